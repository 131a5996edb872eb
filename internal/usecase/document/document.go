package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sgfkit/internal/domain/document"
	"sgfkit/internal/domain/rawsgf"
	"sgfkit/internal/domain/sgf"
	sgferrors "sgfkit/internal/errors"
)

type DocumentStore interface {
	SaveDocument(ctx context.Context, record document.Record, sgfText string) error
	LoadDocument(ctx context.Context, id string) (document.Record, error)
	DeleteDocument(ctx context.Context, id string) error
	SaveSGFText(ctx context.Context, id string, sgfText string) error
	LoadSGFText(ctx context.Context, id string) (string, error)
}

type DocumentUseCase struct {
	store     DocumentStore
	assembler *Assembler
	builder   *sgf.TreeBuilder
	log       *zap.SugaredLogger
	now       func() time.Time

	// Изменения одного документа идут по очереди: загрузка, правка
	// и сохранение записи целиком не должны пересекаться.
	locks *documentLocks
}

func NewDocumentUseCase(store DocumentStore, log *zap.SugaredLogger) *DocumentUseCase {
	return &DocumentUseCase{
		store:     store,
		assembler: NewAssembler(log),
		builder:   sgf.NewTreeBuilder(),
		log:       log,
		now:       time.Now,
		locks:     newDocumentLocks(),
	}
}

// CreateDocument проверяет сырое дерево, строит по нему типизированное
// (чтобы отклонить структурно неверный ввод) и сохраняет его.
func (d *DocumentUseCase) CreateDocument(ctx context.Context, raw *rawsgf.Collection) (string, error) {
	if raw == nil {
		return "", sgferrors.ErrInvalidDocument
	}
	if err := raw.Validate(); err != nil {
		return "", err
	}
	games, err := d.assembler.BuildCollection(raw)
	if err != nil {
		return "", err
	}

	now := d.now()
	record := document.Record{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
		Raw:       *ToRawCollection(games),
	}
	if err = d.store.SaveDocument(ctx, record, SerializeSGF(&record.Raw)); err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}

	d.log.Infow("document created", "id", record.ID, "games", len(games))
	return record.ID, nil
}

func (d *DocumentUseCase) GetDocument(ctx context.Context, id string) (*document.Document, error) {
	record, err := d.store.LoadDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	games, err := d.assembler.BuildCollection(&record.Raw)
	if err != nil {
		return nil, err
	}
	return &document.Document{ID: record.ID, Games: games}, nil
}

func (d *DocumentUseCase) GetDocumentView(ctx context.Context, id string) (document.DocumentView, error) {
	doc, err := d.GetDocument(ctx, id)
	if err != nil {
		return document.DocumentView{}, err
	}
	return NewDocumentView(doc), nil
}

// GetSGF сначала смотрит в кеш, при промахе собирает текст из сырого дерева.
func (d *DocumentUseCase) GetSGF(ctx context.Context, id string) (string, error) {
	text, err := d.store.LoadSGFText(ctx, id)
	if err == nil {
		return text, nil
	}
	if !errors.Is(err, sgferrors.ErrCacheMiss) {
		d.log.Warnw("sgf cache lookup failed", "id", id, "error", err)
	}

	record, err := d.store.LoadDocument(ctx, id)
	if err != nil {
		return "", err
	}
	text = SerializeSGF(&record.Raw)
	if err = d.store.SaveSGFText(ctx, id, text); err != nil {
		d.log.Warnw("failed to cache sgf text", "id", id, "error", err)
	}
	return text, nil
}

func (d *DocumentUseCase) DeleteDocument(ctx context.Context, id string) error {
	unlock := d.locks.lock(id)
	defer unlock()
	return d.store.DeleteDocument(ctx, id)
}

func (d *DocumentUseCase) game(doc *document.Document, gameIndex int) (*document.Game, error) {
	if gameIndex < 0 || gameIndex >= len(doc.Games) {
		return nil, fmt.Errorf("%w: index %d", sgferrors.ErrGameNotFound, gameIndex)
	}
	return doc.Games[gameIndex], nil
}

// gameInfoAnchor - последний узел основного варианта, если над ним есть
// узел game-info; иначе корень.
func gameInfoAnchor(root *sgf.Node) *sgf.Node {
	mainLine := root.MainVariationNodes()
	if leaf := mainLine[len(mainLine)-1]; leaf.GameInfoNode() != nil {
		return leaf
	}
	return root
}

func (d *DocumentUseCase) GetGameInfo(ctx context.Context, id string, gameIndex int) (*sgf.GameInfo, error) {
	doc, err := d.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	game, err := d.game(doc, gameIndex)
	if err != nil {
		return nil, err
	}
	return gameInfoAnchor(game.Root).CreateGameInfo(), nil
}

func (d *DocumentUseCase) UpdateGameInfo(ctx context.Context, id string, gameIndex int, info *sgf.GameInfo) error {
	unlock := d.locks.lock(id)
	defer unlock()

	doc, err := d.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	game, err := d.game(doc, gameIndex)
	if err != nil {
		return err
	}
	if err = gameInfoAnchor(game.Root).WriteGameInfo(info); err != nil {
		return err
	}
	_, err = d.save(ctx, doc)
	return err
}

// AppendMove добавляет ход в конец основного варианта партии.
func (d *DocumentUseCase) AppendMove(ctx context.Context, id string, gameIndex int, move document.Move) (string, error) {
	propertyType := sgf.PropertyTypeFromID(move.Color)
	if propertyType != sgf.PropertyTypeB && propertyType != sgf.PropertyTypeW {
		return "", fmt.Errorf("%w: move color %q", sgferrors.ErrInvalidArgument, move.Color)
	}

	unlock := d.locks.lock(id)
	defer unlock()

	doc, err := d.GetDocument(ctx, id)
	if err != nil {
		return "", err
	}
	game, err := d.game(doc, gameIndex)
	if err != nil {
		return "", err
	}

	decoder := sgf.NewPropertyDecoder(game.GameType, game.BoardSize)
	prop, err := decoder.DecodeProperty(move.Color, []string{move.Coordinates})
	if err != nil {
		return "", err
	}
	if single := prop.Value().ToSingle(); single != nil && single.ErrorMessage() != "" {
		return "", fmt.Errorf("%w: %s", sgferrors.ErrInvalidValueType, single.ErrorMessage())
	}

	node := sgf.NewNode()
	if err = node.AppendProperty(prop); err != nil {
		return "", err
	}
	mainLine := game.Root.MainVariationNodes()
	if err = d.builder.AppendChild(mainLine[len(mainLine)-1], node); err != nil {
		return "", err
	}
	return d.save(ctx, doc)
}

func (d *DocumentUseCase) save(ctx context.Context, doc *document.Document) (string, error) {
	record, err := d.store.LoadDocument(ctx, doc.ID)
	if err != nil {
		return "", err
	}
	record.Raw = *ToRawCollection(doc.Games)
	record.UpdatedAt = d.now()

	text := SerializeSGF(&record.Raw)
	if err = d.store.SaveDocument(ctx, record, text); err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}
	return text, nil
}
