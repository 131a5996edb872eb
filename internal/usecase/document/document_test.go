package document

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"sgfkit/internal/domain/document"
	"sgfkit/internal/domain/rawsgf"
	"sgfkit/internal/domain/sgf"
	sgferrors "sgfkit/internal/errors"
)

func newTestUseCase(t *testing.T) (*DocumentUseCase, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	uc := NewDocumentUseCase(store, zaptest.NewLogger(t).Sugar())
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return uc, store
}

func createSample(t *testing.T, uc *DocumentUseCase) string {
	t.Helper()
	id, err := uc.CreateDocument(context.Background(), sampleCollection())
	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func TestCreateDocument(t *testing.T) {
	t.Parallel()

	uc, store := newTestUseCase(t)
	id := createSample(t, uc)

	record, err := store.LoadDocument(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, record.ID)
	assert.Equal(t, uc.now(), record.CreatedAt)
	assert.Equal(t, sampleSGF, store.texts[id])

	other := createSample(t, uc)
	assert.NotEqual(t, id, other)
}

func TestCreateDocumentRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	uc, store := newTestUseCase(t)

	tests := []struct {
		name       string
		collection *rawsgf.Collection
	}{
		{"nil", nil},
		{"no games", &rawsgf.Collection{}},
		{"game without nodes", &rawsgf.Collection{GameTrees: []*rawsgf.GameTree{{}}}},
		{"property without values", &rawsgf.Collection{GameTrees: []*rawsgf.GameTree{{
			Nodes: []rawsgf.Node{node(prop("B"))},
		}}}},
		{"empty property id", &rawsgf.Collection{GameTrees: []*rawsgf.GameTree{{
			Nodes: []rawsgf.Node{node(prop("", "x"))},
		}}}},
	}

	for _, tt := range tests {
		_, err := uc.CreateDocument(context.Background(), tt.collection)
		assert.ErrorIs(t, err, sgferrors.ErrInvalidDocument, tt.name)
	}
	assert.Zero(t, store.saves)
}

func TestGetSGFFallsBackToStoredTree(t *testing.T) {
	t.Parallel()

	uc, store := newTestUseCase(t)
	id := createSample(t, uc)
	ctx := context.Background()

	text, err := uc.GetSGF(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sampleSGF, text)

	store.dropText(id)
	text, err = uc.GetSGF(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sampleSGF, text)
	assert.Equal(t, sampleSGF, store.texts[id], "text is cached again")

	_, err = uc.GetSGF(ctx, "missing")
	assert.ErrorIs(t, err, sgferrors.ErrDocumentNotFound)
}

func TestGetDocumentView(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase(t)
	id := createSample(t, uc)

	view, err := uc.GetDocumentView(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, view.Games, 1)

	game := view.Games[0]
	assert.Equal(t, "Go", game.GameType)
	require.Len(t, game.Nodes, 5)

	root := game.Nodes[0]
	assert.Equal(t, -1, root.Parent)
	assert.Contains(t, root.Traits, "root")
	assert.Contains(t, root.Traits, "game-info")
	assert.Equal(t, "GM", root.Properties[0].ID)
	assert.Equal(t, "root", root.Properties[0].Category)
	assert.EqualValues(t, 1, root.Properties[0].Values[0].Typed)

	variation := game.Nodes[4]
	assert.Equal(t, 2, variation.Parent)
	assert.Equal(t, 3, variation.Depth)
	assert.Equal(t, []string{"move", "node-annotation"}, variation.Traits)
	assert.Equal(t, sgf.GoMove{Point: sgf.GoPoint{X: 14, Y: 2}}, variation.Properties[0].Values[0].Typed)
}

func TestDeleteDocument(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase(t)
	id := createSample(t, uc)
	ctx := context.Background()

	require.NoError(t, uc.DeleteDocument(ctx, id))
	_, err := uc.GetDocument(ctx, id)
	assert.ErrorIs(t, err, sgferrors.ErrDocumentNotFound)
	assert.ErrorIs(t, uc.DeleteDocument(ctx, id), sgferrors.ErrDocumentNotFound)
}

func TestAppendMove(t *testing.T) {
	t.Parallel()

	uc, store := newTestUseCase(t)
	id := createSample(t, uc)
	ctx := context.Background()

	text, err := uc.AppendMove(ctx, id, 0, document.Move{Color: "W", Coordinates: "dp"})
	require.NoError(t, err)
	assert.Equal(t, "(;GM[1]SZ[19]PB[Shusaku]PW[Gennan];B[qd];W[dc](;B[pq];W[dp])(;B[oc]C[variation]))", text)
	assert.Equal(t, text, store.texts[id])

	text, err = uc.AppendMove(ctx, id, 0, document.Move{Color: "B", Coordinates: ""})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(text, ";W[dp];B[])(;B[oc]C[variation]))"), text)

	doc, err := uc.GetDocument(ctx, id)
	require.NoError(t, err)
	main := doc.Games[0].Root.MainVariationNodes()
	move, err := main[len(main)-1].Property(sgf.PropertyTypeB).Value().ToSingle().GoMove()
	require.NoError(t, err)
	assert.True(t, move.Pass)
}

func TestAppendMoveRejections(t *testing.T) {
	t.Parallel()

	uc, store := newTestUseCase(t)
	id := createSample(t, uc)
	savesBefore := store.saves

	tests := []struct {
		name    string
		id      string
		game    int
		move    document.Move
		wantErr error
	}{
		{"unknown color", id, 0, document.Move{Color: "X", Coordinates: "aa"}, sgferrors.ErrInvalidArgument},
		{"setup property", id, 0, document.Move{Color: "AB", Coordinates: "aa"}, sgferrors.ErrInvalidArgument},
		{"off board", id, 0, document.Move{Color: "B", Coordinates: "zz"}, sgferrors.ErrInvalidValueType},
		{"missing game", id, 3, document.Move{Color: "B", Coordinates: "aa"}, sgferrors.ErrGameNotFound},
		{"missing document", "nope", 0, document.Move{Color: "B", Coordinates: "aa"}, sgferrors.ErrDocumentNotFound},
	}

	for _, tt := range tests {
		_, err := uc.AppendMove(context.Background(), tt.id, tt.game, tt.move)
		assert.ErrorIs(t, err, tt.wantErr, tt.name)
	}
	assert.Equal(t, savesBefore, store.saves)
}

func TestGameInfoRoundTrip(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase(t)
	id := createSample(t, uc)
	ctx := context.Background()

	info, err := uc.GetGameInfo(ctx, id, 0)
	require.NoError(t, err)
	assert.Equal(t, "Shusaku", info.BlackPlayerName)
	assert.Equal(t, "Gennan", info.WhitePlayerName)

	info.Result = "B+2"
	info.Komi = 0
	info.WhitePlayerName = "Gennan Inseki"
	require.NoError(t, uc.UpdateGameInfo(ctx, id, 0, info))

	text, err := uc.GetSGF(ctx, id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "(;GM[1]SZ[19]PB[Shusaku]PW[Gennan Inseki]RE[B+2];B[qd]"), text)

	updated, err := uc.GetGameInfo(ctx, id, 0)
	require.NoError(t, err)
	assert.Equal(t, sgf.GameResultBlackWin, updated.GameResult().Type)

	_, err = uc.GetGameInfo(ctx, id, 1)
	assert.ErrorIs(t, err, sgferrors.ErrGameNotFound)
	assert.ErrorIs(t, uc.UpdateGameInfo(ctx, id, 0, nil), sgferrors.ErrInvalidArgument)
}

func TestConcurrentEditsAreSerialized(t *testing.T) {
	t.Parallel()

	uc, store := newTestUseCase(t)
	id := createSample(t, uc)
	store.loadDelay = 5 * time.Millisecond
	ctx := context.Background()

	moves := []document.Move{
		{Color: "W", Coordinates: "cc"},
		{Color: "B", Coordinates: "dd"},
		{Color: "W", Coordinates: "ee"},
		{Color: "B", Coordinates: "ff"},
		{Color: "W", Coordinates: "gg"},
		{Color: "B", Coordinates: "hh"},
	}

	var group errgroup.Group
	for _, move := range moves {
		move := move
		group.Go(func() error {
			_, err := uc.AppendMove(ctx, id, 0, move)
			return err
		})
	}
	group.Go(func() error {
		info, err := uc.GetGameInfo(ctx, id, 0)
		if err != nil {
			return err
		}
		info.Result = "W+R"
		return uc.UpdateGameInfo(ctx, id, 0, info)
	})
	require.NoError(t, group.Wait())

	doc, err := uc.GetDocument(ctx, id)
	require.NoError(t, err)
	// корень, B[qd], W[dc], B[pq] и все добавленные ходы
	assert.Len(t, doc.Games[0].Root.MainVariationNodes(), 4+len(moves))

	text, err := uc.GetSGF(ctx, id)
	require.NoError(t, err)
	for _, move := range moves {
		assert.Contains(t, text, move.Color+"["+move.Coordinates+"]")
	}
	assert.Contains(t, text, "RE[W+R]")
	assert.Zero(t, uc.locks.size())
}

func TestCreateDocumentRejectsUnescapedValues(t *testing.T) {
	t.Parallel()

	uc, store := newTestUseCase(t)

	for _, value := range []string{"x]AB[aa", `trailing\`} {
		raw := &rawsgf.Collection{GameTrees: []*rawsgf.GameTree{{
			Nodes: []rawsgf.Node{node(prop("GM", "1"), prop("C", value))},
		}}}
		_, err := uc.CreateDocument(context.Background(), raw)
		assert.ErrorIs(t, err, sgferrors.ErrInvalidDocument, value)
	}
	assert.Zero(t, store.saves)
}
