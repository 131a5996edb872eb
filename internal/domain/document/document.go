package document

import (
	"time"

	"sgfkit/internal/domain/rawsgf"
	"sgfkit/internal/domain/sgf"
)

// Record - то, что хранится в MongoDB: сырое дерево от парсера.
type Record struct {
	ID        string            `json:"id" bson:"_id"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
	Raw       rawsgf.Collection `json:"raw" bson:"raw"`
}

// Game - одна партия документа. GameType и BoardSize определяются
// по корню один раз и действуют для всего дерева.
type Game struct {
	Root      *sgf.Node
	GameType  sgf.GameType
	BoardSize sgf.BoardSize
}

type Document struct {
	ID    string
	Games []*Game
}

// @name Move
type Move struct {
	Color       string `json:"color"`
	Coordinates string `json:"coordinates"`
}

type CreateDocumentResponse struct {
	ID string `json:"id"`
}

type GameStateResponse struct {
	Move Move   `json:"move"`
	SGF  string `json:"sgf"`
}

type GameInfoResponse struct {
	GameInfo *sgf.GameInfo  `json:"game_info"`
	Result   sgf.GameResult `json:"result"`
}

type DocumentView struct {
	ID    string     `json:"id"`
	Games []GameView `json:"games"`
}

type GameView struct {
	GameType  string        `json:"game_type"`
	BoardSize sgf.BoardSize `json:"board_size"`
	Nodes     []NodeView    `json:"nodes"`
}

// NodeView - узел в плоском списке (обход в глубину); Parent = -1 у корня.
type NodeView struct {
	Index      int            `json:"index"`
	Parent     int            `json:"parent"`
	Depth      int            `json:"depth"`
	Traits     []string       `json:"traits"`
	Properties []PropertyView `json:"properties"`
}

type PropertyView struct {
	ID       string      `json:"id"`
	Known    bool        `json:"known"`
	Category string      `json:"category"`
	Values   []ValueView `json:"values"`
}

type ValueView struct {
	Raw      string      `json:"raw"`
	Type     string      `json:"type,omitempty"`
	Typed    any         `json:"typed,omitempty"`
	Error    string      `json:"error,omitempty"`
	Composed []ValueView `json:"composed,omitempty"`
}
