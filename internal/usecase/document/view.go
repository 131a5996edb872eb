package document

import (
	"sgfkit/internal/domain/document"
	"sgfkit/internal/domain/sgf"
)

var traitNames = []struct {
	trait sgf.NodeTraits
	name  string
}{
	{sgf.NodeTraitRoot, "root"},
	{sgf.NodeTraitSetup, "setup"},
	{sgf.NodeTraitMove, "move"},
	{sgf.NodeTraitGameInfo, "game-info"},
	{sgf.NodeTraitNodeAnnotation, "node-annotation"},
	{sgf.NodeTraitMoveAnnotation, "move-annotation"},
	{sgf.NodeTraitMarkup, "markup"},
	{sgf.NodeTraitTiming, "timing"},
	{sgf.NodeTraitInheritable, "inheritable"},
	{sgf.NodeTraitMiscellaneous, "miscellaneous"},
}

func NewDocumentView(doc *document.Document) document.DocumentView {
	view := document.DocumentView{ID: doc.ID, Games: make([]document.GameView, 0, len(doc.Games))}
	for _, game := range doc.Games {
		gameView := document.GameView{
			GameType:  game.GameType.String(),
			BoardSize: game.BoardSize,
		}
		appendNodeViews(&gameView.Nodes, game.Root, -1)
		view.Games = append(view.Games, gameView)
	}
	return view
}

func appendNodeViews(views *[]document.NodeView, node *sgf.Node, parent int) {
	index := len(*views)
	*views = append(*views, newNodeView(node, index, parent))
	for _, child := range node.Children() {
		appendNodeViews(views, child, index)
	}
}

func newNodeView(node *sgf.Node, index, parent int) document.NodeView {
	traits := node.Traits()
	view := document.NodeView{
		Index:      index,
		Parent:     parent,
		Depth:      node.Depth(),
		Traits:     []string{},
		Properties: make([]document.PropertyView, 0, len(node.Properties())),
	}
	for _, t := range traitNames {
		if traits.Has(t.trait) {
			view.Traits = append(view.Traits, t.name)
		}
	}
	for _, prop := range node.Properties() {
		propView := document.PropertyView{
			ID:       prop.Name(),
			Known:    !prop.IsCustom(),
			Category: prop.Category().String(),
			Values:   make([]document.ValueView, 0, len(prop.Values())),
		}
		for _, value := range prop.Values() {
			propView.Values = append(propView.Values, newValueView(value))
		}
		view.Properties = append(view.Properties, propView)
	}
	return view
}

func newValueView(value sgf.PropertyValue) document.ValueView {
	if composed := value.ToComposed(); composed != nil {
		return document.ValueView{
			Raw: composed.RawValue(),
			Composed: []document.ValueView{
				newSingleView(composed.First()),
				newSingleView(composed.Second()),
			},
		}
	}
	return newSingleView(value.ToSingle())
}

func newSingleView(value *sgf.SinglePropertyValue) document.ValueView {
	view := document.ValueView{
		Raw:   value.RawValue(),
		Type:  value.ValueType().String(),
		Error: value.ErrorMessage(),
	}
	if typed, err := value.TypedValue(); err == nil {
		view.Typed = typed
	}
	return view
}
