package sgf

import (
	"math"
	"strconv"
	"strings"

	sgferrors "sgfkit/internal/errors"
)

// GameInfo - плоское представление свойств корня (GM, SZ) и ближайшего
// узла game-info.
type GameInfo struct {
	GameType    GameType  `json:"game_type"`
	RawGameType int64     `json:"raw_game_type"`
	BoardSize   BoardSize `json:"board_size"`

	RecorderName     string `json:"recorder_name,omitempty"`
	SourceName       string `json:"source_name,omitempty"`
	AnnotationAuthor string `json:"annotation_author,omitempty"`
	Copyright        string `json:"copyright,omitempty"`

	GameName            string  `json:"game_name,omitempty"`
	GameInformation     string  `json:"game_information,omitempty"`
	GameDates           string  `json:"game_dates,omitempty"`
	RoundInformation    string  `json:"round_information,omitempty"`
	EventName           string  `json:"event_name,omitempty"`
	PlaceName           string  `json:"place_name,omitempty"`
	Result              string  `json:"result,omitempty"`
	TimeLimitInSeconds  float64 `json:"time_limit_in_seconds,omitempty"`
	OvertimeInformation string  `json:"overtime_information,omitempty"`
	Opening             string  `json:"opening,omitempty"`
	Rules               string  `json:"rules,omitempty"`

	BlackPlayerName string `json:"black_player_name,omitempty"`
	BlackPlayerRank string `json:"black_player_rank,omitempty"`
	BlackPlayerTeam string `json:"black_player_team,omitempty"`
	WhitePlayerName string `json:"white_player_name,omitempty"`
	WhitePlayerRank string `json:"white_player_rank,omitempty"`
	WhitePlayerTeam string `json:"white_player_team,omitempty"`

	// Только для Go.
	Handicap int64   `json:"handicap,omitempty"`
	Komi     float64 `json:"komi,omitempty"`
}

// GameResult разбирает поле Result.
func (g *GameInfo) GameResult() GameResult {
	return ParseGameResult(g.Result)
}

type textField struct {
	propertyType PropertyType
	field        func(*GameInfo) *string
}

var gameInfoTextFields = []textField{
	{PropertyTypeUS, func(g *GameInfo) *string { return &g.RecorderName }},
	{PropertyTypeSO, func(g *GameInfo) *string { return &g.SourceName }},
	{PropertyTypeAN, func(g *GameInfo) *string { return &g.AnnotationAuthor }},
	{PropertyTypeCP, func(g *GameInfo) *string { return &g.Copyright }},
	{PropertyTypeGN, func(g *GameInfo) *string { return &g.GameName }},
	{PropertyTypeGC, func(g *GameInfo) *string { return &g.GameInformation }},
	{PropertyTypeDT, func(g *GameInfo) *string { return &g.GameDates }},
	{PropertyTypeRO, func(g *GameInfo) *string { return &g.RoundInformation }},
	{PropertyTypeEV, func(g *GameInfo) *string { return &g.EventName }},
	{PropertyTypePC, func(g *GameInfo) *string { return &g.PlaceName }},
	{PropertyTypeRE, func(g *GameInfo) *string { return &g.Result }},
	{PropertyTypeOT, func(g *GameInfo) *string { return &g.OvertimeInformation }},
	{PropertyTypeON, func(g *GameInfo) *string { return &g.Opening }},
	{PropertyTypeRU, func(g *GameInfo) *string { return &g.Rules }},
	{PropertyTypePB, func(g *GameInfo) *string { return &g.BlackPlayerName }},
	{PropertyTypeBR, func(g *GameInfo) *string { return &g.BlackPlayerRank }},
	{PropertyTypeBT, func(g *GameInfo) *string { return &g.BlackPlayerTeam }},
	{PropertyTypePW, func(g *GameInfo) *string { return &g.WhitePlayerName }},
	{PropertyTypeWR, func(g *GameInfo) *string { return &g.WhitePlayerRank }},
	{PropertyTypeWT, func(g *GameInfo) *string { return &g.WhitePlayerTeam }},
}

// GameTypeOf читает GM корня дерева, в котором стоит узел.
// Без GM - игра по умолчанию, с некорректным GM - GameTypeUnknown.
func GameTypeOf(n *Node) (GameType, int64) {
	value := firstSingle(n.Root(), PropertyTypeGM)
	if value == nil {
		return DefaultGameType, int64(DefaultGameType)
	}
	number, err := value.Number()
	if err != nil {
		return GameTypeUnknown, 0
	}
	return GameTypeFromNumber(number), number
}

// BoardSizeOf читает SZ корня; без SZ - размер по умолчанию для игры.
func BoardSizeOf(n *Node, gameType GameType) BoardSize {
	prop := n.Root().Property(PropertyTypeSZ)
	if prop == nil || !prop.HasValues() {
		return DefaultBoardSize(gameType)
	}
	switch value := prop.Value(); {
	case value.IsComposed():
		composed := value.ToComposed()
		columns, errColumns := composed.First().Number()
		rows, errRows := composed.Second().Number()
		if errColumns != nil || errRows != nil {
			return BoardSizeNone
		}
		return BoardSize{Columns: int(columns), Rows: int(rows)}
	default:
		size, err := value.ToSingle().Number()
		if err != nil {
			return BoardSizeNone
		}
		return BoardSize{Columns: int(size), Rows: int(size)}
	}
}

// CreateGameInfo собирает GameInfo из корня и ближайшего узла game-info.
func (n *Node) CreateGameInfo() *GameInfo {
	info := &GameInfo{}
	info.GameType, info.RawGameType = GameTypeOf(n)
	info.BoardSize = BoardSizeOf(n, info.GameType)

	source := n.GameInfoNode()
	if source == nil {
		return info
	}

	for _, f := range gameInfoTextFields {
		if value := firstSingle(source, f.propertyType); value != nil {
			if text, err := value.Text(); err == nil {
				*f.field(info) = text
			} else {
				*f.field(info) = value.RawValue()
			}
		}
	}
	if value := firstSingle(source, PropertyTypeTM); value != nil {
		info.TimeLimitInSeconds, _ = value.Real()
	}
	if info.GameType == GameTypeGo {
		if value := firstSingle(source, PropertyTypeHA); value != nil {
			info.Handicap, _ = value.Number()
		}
		if value := firstSingle(source, PropertyTypeKM); value != nil {
			info.Komi, _ = value.Real()
		}
	}
	return info
}

// WriteGameInfo записывает GameInfo обратно: GM и SZ - в корень, остальное -
// в ближайший узел game-info, а если его нет, то в сам узел.
// Пустые поля удаляют соответствующие свойства.
func (n *Node) WriteGameInfo(info *GameInfo) error {
	if info == nil {
		return precondition("WriteGameInfo", sgferrors.ErrInvalidArgument)
	}

	root := n.Root()
	target := n.GameInfoNode()
	if target == nil {
		target = n
	}

	gameNumber := info.RawGameType
	if info.GameType != GameTypeUnknown {
		gameNumber = int64(info.GameType)
	}
	if gameNumber > 0 {
		if err := setValue(root, PropertyTypeGM, NewNumberValue(gameNumber)); err != nil {
			return err
		}
	}
	if err := setValue(root, PropertyTypeSZ, boardSizeValue(info.BoardSize)); err != nil {
		return err
	}

	for _, f := range gameInfoTextFields {
		var value PropertyValue
		if text := *f.field(info); text != "" {
			if DescriptorFor(f.propertyType, info.GameType) == DescriptorText {
				value = NewTextValue(text)
			} else {
				value = NewSimpleTextValue(text)
			}
		}
		if err := setValue(target, f.propertyType, value); err != nil {
			return err
		}
	}

	var timeLimit PropertyValue
	if info.TimeLimitInSeconds > 0 {
		timeLimit = NewRealValue(info.TimeLimitInSeconds)
	}
	if err := setValue(target, PropertyTypeTM, timeLimit); err != nil {
		return err
	}

	// HA и KM есть только у Go; для других игр они удаляются.
	var handicap, komi PropertyValue
	if info.GameType == GameTypeGo && info.Handicap > 0 {
		handicap = NewNumberValue(info.Handicap)
	}
	if info.GameType == GameTypeGo && info.Komi != 0 {
		komi = NewRealValue(info.Komi)
	}
	if err := setValue(target, PropertyTypeHA, handicap); err != nil {
		return err
	}
	return setValue(target, PropertyTypeKM, komi)
}

func boardSizeValue(size BoardSize) PropertyValue {
	if size.IsNone() {
		return nil
	}
	if size.IsSquare() {
		return NewNumberValue(int64(size.Columns))
	}
	return &ComposedPropertyValue{
		first:  NewNumberValue(int64(size.Columns)),
		second: NewNumberValue(int64(size.Rows)),
	}
}

// setValue ставит свойство с одним значением; nil удаляет свойство.
func setValue(node *Node, propertyType PropertyType, value PropertyValue) error {
	if value == nil {
		if existing := node.Property(propertyType); existing != nil {
			return node.RemoveProperty(existing)
		}
		return nil
	}
	prop, err := NewProperty(propertyType, value)
	if err != nil {
		return err
	}
	return node.SetProperty(prop)
}

func firstSingle(node *Node, propertyType PropertyType) *SinglePropertyValue {
	prop := node.Property(propertyType)
	if prop == nil {
		return nil
	}
	value := prop.Value()
	if value == nil {
		return nil
	}
	return value.ToSingle()
}

// GameResultType - исход партии из RE.
type GameResultType int

const (
	GameResultUnknown GameResultType = iota
	GameResultBlackWin
	GameResultWhiteWin
	GameResultDraw
	GameResultNoResult
)

type WinType int

const (
	WinWithScore WinType = iota
	WinWithoutScore
	WinByResignation
	WinOnTime
	WinByForfeit
)

type GameResult struct {
	Type    GameResultType `json:"type"`
	WinType WinType        `json:"win_type"`
	Score   float64        `json:"score,omitempty"`
	IsValid bool           `json:"is_valid"`
}

// ParseGameResult разбирает RE: "B+R", "W+3.5", "0", "Draw", "Void", "?".
func ParseGameResult(raw string) GameResult {
	switch raw {
	case "0", "Draw":
		return GameResult{Type: GameResultDraw, IsValid: true}
	case "Void":
		return GameResult{Type: GameResultNoResult, IsValid: true}
	case "?":
		return GameResult{Type: GameResultUnknown, IsValid: true}
	}

	var result GameResult
	switch {
	case strings.HasPrefix(raw, "B+"):
		result.Type = GameResultBlackWin
	case strings.HasPrefix(raw, "W+"):
		result.Type = GameResultWhiteWin
	default:
		return GameResult{}
	}

	switch rest := raw[2:]; rest {
	case "":
		result.WinType = WinWithoutScore
	case "R", "Resign":
		result.WinType = WinByResignation
	case "T", "Time":
		result.WinType = WinOnTime
	case "F", "Forfeit":
		result.WinType = WinByForfeit
	default:
		score, err := strconv.ParseFloat(rest, 64)
		if err != nil || math.IsInf(score, 0) || math.IsNaN(score) {
			return GameResult{}
		}
		result.WinType = WinWithScore
		result.Score = score
	}
	result.IsValid = true
	return result
}
