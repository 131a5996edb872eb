package document

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sgfkit/internal/domain/document"
	"sgfkit/internal/domain/rawsgf"
	"sgfkit/internal/domain/sgf"
	sgferrors "sgfkit/internal/errors"
)

// Assembler строит типизированное дерево из сырого дерева парсера.
// Обход в глубину повторяет порядок исходного файла.
type Assembler struct {
	log     *zap.SugaredLogger
	builder *sgf.TreeBuilder
}

func NewAssembler(log *zap.SugaredLogger) *Assembler {
	return &Assembler{log: log, builder: sgf.NewTreeBuilder()}
}

func (a *Assembler) BuildCollection(collection *rawsgf.Collection) ([]*document.Game, error) {
	if collection == nil {
		return nil, sgferrors.ErrInvalidDocument
	}
	games := make([]*document.Game, 0, len(collection.GameTrees))
	for i, tree := range collection.GameTrees {
		game, err := a.BuildGame(tree)
		if err != nil {
			return nil, fmt.Errorf("game tree %d: %w", i, err)
		}
		games = append(games, game)
	}
	return games, nil
}

// BuildGame определяет игру и размер доски по корню и передаёт их
// без изменений всем потомкам.
func (a *Assembler) BuildGame(tree *rawsgf.GameTree) (*document.Game, error) {
	if tree == nil || len(tree.Nodes) == 0 {
		return nil, fmt.Errorf("%w: game tree has no nodes", sgferrors.ErrInvalidDocument)
	}

	gameType, boardSize := gameContext(tree.Nodes[0])
	decoder := sgf.NewPropertyDecoder(gameType, boardSize)

	root, err := a.buildTree(decoder, tree, nil)
	if err != nil {
		return nil, err
	}
	return &document.Game{Root: root, GameType: gameType, BoardSize: boardSize}, nil
}

// gameContext декодирует GM и SZ корня без привязки к игре.
func gameContext(root rawsgf.Node) (sgf.GameType, sgf.BoardSize) {
	probe := sgf.NewNode()
	neutral := sgf.NewPropertyDecoder(sgf.GameTypeUnknown, sgf.BoardSizeNone)
	for _, id := range []string{sgf.PropertyTypeGM.ID(), sgf.PropertyTypeSZ.ID()} {
		values, ok := root.Values(id)
		if !ok {
			continue
		}
		if prop, err := neutral.DecodeProperty(id, values); err == nil {
			_ = probe.AppendProperty(prop)
		}
	}
	gameType, _ := sgf.GameTypeOf(probe)
	return gameType, sgf.BoardSizeOf(probe, gameType)
}

// buildTree: узлы последовательности идут цепочкой первых детей,
// варианты становятся следующими детьми последнего узла последовательности.
func (a *Assembler) buildTree(decoder *sgf.PropertyDecoder, tree *rawsgf.GameTree, parent *sgf.Node) (*sgf.Node, error) {
	if len(tree.Nodes) == 0 {
		return nil, fmt.Errorf("%w: variation has no nodes", sgferrors.ErrInvalidDocument)
	}

	var first *sgf.Node
	current := parent
	for _, rawNode := range tree.Nodes {
		node, err := a.buildNode(decoder, rawNode)
		if err != nil {
			return nil, err
		}
		if current != nil {
			if err = a.builder.AppendChild(current, node); err != nil {
				return nil, err
			}
		}
		if first == nil {
			first = node
		}
		current = node
	}

	for _, variation := range tree.Children {
		if variation == nil {
			continue
		}
		if _, err := a.buildTree(decoder, variation, current); err != nil {
			return nil, err
		}
	}
	return first, nil
}

func (a *Assembler) buildNode(decoder *sgf.PropertyDecoder, rawNode rawsgf.Node) (*sgf.Node, error) {
	node := sgf.NewNode()
	for _, rawProperty := range rawNode.Properties {
		prop, err := decoder.DecodeProperty(rawProperty.ID, rawProperty.Values)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", sgferrors.ErrInvalidDocument, err)
		}
		a.logConversionErrors(prop)

		err = node.AppendProperty(prop)
		if errors.Is(err, sgferrors.ErrPropertyExists) {
			// Повторное свойство в узле: значения сливаются в первое.
			a.log.Warnw("duplicate property in node, merging values", "property", prop.Name())
			existing := node.PropertyByName(prop.Name())
			for _, value := range prop.Values() {
				if err = existing.AppendValue(value); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (a *Assembler) logConversionErrors(prop *sgf.Property) {
	for _, value := range prop.Values() {
		singles := []*sgf.SinglePropertyValue{value.ToSingle()}
		if composed := value.ToComposed(); composed != nil {
			singles = []*sgf.SinglePropertyValue{composed.First(), composed.Second()}
		}
		for _, single := range singles {
			if single != nil && single.ErrorMessage() != "" {
				a.log.Debugw("property value conversion failed",
					"property", prop.Name(),
					"raw", single.RawValue(),
					"error", single.ErrorMessage(),
				)
			}
		}
	}
}
