package sgf

import (
	"fmt"

	sgferrors "sgfkit/internal/errors"
)

// TreeBuilder - единственный компонент, который меняет связи узлов.
//
// Каждая операция сначала проверяет предусловия и только потом меняет
// указатели: либо операция применяется целиком, либо дерево не меняется.
// Узел, уже стоящий где-то в дереве, перед вставкой отцепляется от старого
// места, поэтому одно поддерево никогда не достижимо из двух мест.
type TreeBuilder struct{}

func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// SetFirstChild заменяет всю цепочку детей узла на newFirstChild (или на
// пустоту). Все прежние дети теряют родителя и связи между собой.
func (b *TreeBuilder) SetFirstChild(node, newFirstChild *Node) error {
	const op = "SetFirstChild"
	if node == nil {
		return precondition(op, sgferrors.ErrInvalidArgument)
	}
	if newFirstChild != nil {
		if err := checkNoCycle(op, node, newFirstChild); err != nil {
			return err
		}
	}

	if node.firstChild == newFirstChild && (newFirstChild == nil || newFirstChild.nextSibling == nil) {
		return nil
	}

	if newFirstChild != nil {
		detach(newFirstChild)
	}
	orphanChain(node.firstChild)
	node.firstChild = newFirstChild
	if newFirstChild != nil {
		newFirstChild.parent = node
	}
	return nil
}

func (b *TreeBuilder) AppendChild(node, newChild *Node) error {
	return b.insertChild("AppendChild", node, newChild, nil)
}

// InsertChild вставляет newChild перед referenceChild; при referenceChild == nil
// работает как AppendChild.
func (b *TreeBuilder) InsertChild(node, newChild, referenceChild *Node) error {
	return b.insertChild("InsertChild", node, newChild, referenceChild)
}

func (b *TreeBuilder) insertChild(op string, node, newChild, referenceChild *Node) error {
	if node == nil || newChild == nil {
		return precondition(op, sgferrors.ErrInvalidArgument)
	}
	if err := checkNoCycle(op, node, newChild); err != nil {
		return err
	}
	if referenceChild != nil && referenceChild.parent != node {
		return precondition(op, fmt.Errorf("%w: reference child", sgferrors.ErrNotChild))
	}

	// Узел уже стоит на нужном месте.
	if newChild.parent == node && (newChild == referenceChild || newChild.nextSibling == referenceChild) {
		return nil
	}

	detach(newChild)

	newChild.parent = node
	if referenceChild == nil {
		if last := node.LastChild(); last != nil {
			last.nextSibling = newChild
		} else {
			node.firstChild = newChild
		}
		return nil
	}

	if previous := referenceChild.PreviousSibling(); previous != nil {
		previous.nextSibling = newChild
	} else {
		node.firstChild = newChild
	}
	newChild.nextSibling = referenceChild
	return nil
}

// RemoveChild отцепляет child вместе с его поддеревом; child становится
// корнем отдельного дерева.
func (b *TreeBuilder) RemoveChild(node, child *Node) error {
	const op = "RemoveChild"
	if node == nil || child == nil {
		return precondition(op, sgferrors.ErrInvalidArgument)
	}
	if child.parent != node {
		return precondition(op, sgferrors.ErrNotChild)
	}
	detach(child)
	return nil
}

// ReplaceChild ставит newChild на место oldChild; oldChild отцепляется.
func (b *TreeBuilder) ReplaceChild(node, newChild, oldChild *Node) error {
	const op = "ReplaceChild"
	if node == nil || newChild == nil || oldChild == nil {
		return precondition(op, sgferrors.ErrInvalidArgument)
	}
	if oldChild.parent != node {
		return precondition(op, fmt.Errorf("%w: old child", sgferrors.ErrNotChild))
	}
	if err := checkNoCycle(op, node, newChild); err != nil {
		return err
	}
	if newChild == oldChild {
		return nil
	}

	detach(newChild)

	previous := oldChild.PreviousSibling()
	if previous != nil {
		previous.nextSibling = newChild
	} else {
		node.firstChild = newChild
	}
	newChild.parent = node
	newChild.nextSibling = oldChild.nextSibling

	oldChild.parent = nil
	oldChild.nextSibling = nil
	return nil
}

// SetNextSibling заменяет всё, что стоит после узла в списке соседей.
// У корня соседей быть не может.
func (b *TreeBuilder) SetNextSibling(node, newNextSibling *Node) error {
	const op = "SetNextSibling"
	if node == nil {
		return precondition(op, sgferrors.ErrInvalidArgument)
	}
	if node.parent == nil {
		return precondition(op, sgferrors.ErrNoParent)
	}
	if newNextSibling != nil {
		if newNextSibling == node || node.isDescendantOf(newNextSibling) {
			return precondition(op, sgferrors.ErrCycle)
		}
	}

	if node.nextSibling == newNextSibling && (newNextSibling == nil || newNextSibling.nextSibling == nil) {
		return nil
	}

	if newNextSibling != nil {
		detach(newNextSibling)
	}
	orphanChain(node.nextSibling)
	node.nextSibling = newNextSibling
	if newNextSibling != nil {
		newNextSibling.parent = node.parent
	}
	return nil
}

// SetParent добавляет узел последним ребёнком newParent,
// а при newParent == nil удаляет его из дерева.
func (b *TreeBuilder) SetParent(node, newParent *Node) error {
	const op = "SetParent"
	if node == nil {
		return precondition(op, sgferrors.ErrInvalidArgument)
	}
	if newParent == nil {
		if node.parent == nil {
			return nil
		}
		return b.RemoveChild(node.parent, node)
	}
	return b.insertChild(op, newParent, node, nil)
}

// checkNoCycle запрещает подвешивать к узлу его самого или его предка.
func checkNoCycle(op string, node, attached *Node) error {
	if attached == node || node.isDescendantOf(attached) {
		return precondition(op, sgferrors.ErrCycle)
	}
	return nil
}

// detach вынимает узел из списка соседей и чинит цепочку на старом месте.
func detach(node *Node) {
	parent := node.parent
	if parent == nil {
		return
	}
	if previous := node.PreviousSibling(); previous != nil {
		previous.nextSibling = node.nextSibling
	} else {
		parent.firstChild = node.nextSibling
	}
	node.parent = nil
	node.nextSibling = nil
}

// orphanChain отцепляет узел и всех следующих за ним соседей.
func orphanChain(first *Node) {
	for node := first; node != nil; {
		next := node.nextSibling
		node.parent = nil
		node.nextSibling = nil
		node = next
	}
}
