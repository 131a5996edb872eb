package document

import (
	"strings"

	"sgfkit/internal/domain/document"
	"sgfkit/internal/domain/rawsgf"
	"sgfkit/internal/domain/sgf"
)

func ToRawCollection(games []*document.Game) *rawsgf.Collection {
	collection := &rawsgf.Collection{GameTrees: make([]*rawsgf.GameTree, 0, len(games))}
	for _, game := range games {
		collection.GameTrees = append(collection.GameTrees, ToRawGameTree(game.Root))
	}
	return collection
}

// ToRawGameTree превращает типизированное дерево обратно в сырое:
// цепочка единственных детей становится последовательностью,
// развилка - списком вариантов.
func ToRawGameTree(root *sgf.Node) *rawsgf.GameTree {
	tree := &rawsgf.GameTree{}
	node := root
	for {
		tree.Nodes = append(tree.Nodes, toRawNode(node))
		if node.NumberOfChildren() != 1 {
			break
		}
		node = node.FirstChild()
	}
	for _, child := range node.Children() {
		tree.Children = append(tree.Children, ToRawGameTree(child))
	}
	return tree
}

func toRawNode(node *sgf.Node) rawsgf.Node {
	rawNode := rawsgf.Node{Properties: make([]rawsgf.Property, 0, len(node.Properties()))}
	for _, prop := range node.Properties() {
		values := make([]string, 0, len(prop.Values()))
		for _, value := range prop.Values() {
			values = append(values, value.RawValue())
		}
		if len(values) == 0 {
			values = append(values, "")
		}
		rawNode.Properties = append(rawNode.Properties, rawsgf.Property{ID: prop.Name(), Values: values})
	}
	return rawNode
}

// SerializeSGF пишет коллекцию в текст SGF. Сырые значения уже экранированы.
func SerializeSGF(collection *rawsgf.Collection) string {
	var builder strings.Builder
	for _, tree := range collection.GameTrees {
		builder.WriteString("(")
		serializeGameTree(&builder, tree)
		builder.WriteString(")")
	}
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *rawsgf.GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")
		for _, prop := range node.Properties {
			builder.WriteString(prop.ID)
			for _, v := range prop.Values {
				builder.WriteString("[")
				builder.WriteString(v)
				builder.WriteString("]")
			}
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}
