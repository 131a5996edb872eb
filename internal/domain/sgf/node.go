package sgf

import (
	"fmt"

	sgferrors "sgfkit/internal/errors"
)

// NodeTraits - производные флаги роли узла.
type NodeTraits uint32

const NodeTraitNone NodeTraits = 0

const (
	NodeTraitRoot NodeTraits = 1 << iota
	NodeTraitSetup
	NodeTraitMove
	NodeTraitGameInfo
	NodeTraitNodeAnnotation
	NodeTraitMoveAnnotation
	NodeTraitMarkup
	NodeTraitTiming
	NodeTraitInheritable
	NodeTraitMiscellaneous
)

var traitsByCategory = map[PropertyCategory]NodeTraits{
	PropertyCategoryGameInfo:       NodeTraitGameInfo,
	PropertyCategoryMove:           NodeTraitMove,
	PropertyCategorySetup:          NodeTraitSetup,
	PropertyCategoryNodeAnnotation: NodeTraitNodeAnnotation,
	PropertyCategoryMoveAnnotation: NodeTraitMoveAnnotation,
	PropertyCategoryMarkup:         NodeTraitMarkup,
	PropertyCategoryTiming:         NodeTraitTiming,
	PropertyCategoryInheritable:    NodeTraitInheritable,
	PropertyCategoryMiscellaneous:  NodeTraitMiscellaneous,
}

func (t NodeTraits) Has(trait NodeTraits) bool {
	return trait != NodeTraitNone && t&trait == trait
}

// Node - вершина дерева партии.
//
// firstChild и nextSibling задают структуру дерева, parent - только обратная
// ссылка для навигации. Предыдущий сосед вычисляется от первого ребёнка
// родителя. Менять связи может только TreeBuilder.
type Node struct {
	properties []*Property

	parent      *Node
	firstChild  *Node
	nextSibling *Node
}

func NewNode() *Node {
	return &Node{}
}

func (n *Node) Parent() *Node      { return n.parent }
func (n *Node) FirstChild() *Node  { return n.firstChild }
func (n *Node) NextSibling() *Node { return n.nextSibling }

func (n *Node) HasParent() bool      { return n.parent != nil }
func (n *Node) HasChildren() bool    { return n.firstChild != nil }
func (n *Node) HasNextSibling() bool { return n.nextSibling != nil }

func (n *Node) HasPreviousSibling() bool {
	return n.PreviousSibling() != nil
}

func (n *Node) PreviousSibling() *Node {
	if n.parent == nil {
		return nil
	}
	var previous *Node
	for child := n.parent.firstChild; child != nil && child != n; child = child.nextSibling {
		previous = child
	}
	return previous
}

func (n *Node) LastChild() *Node {
	child := n.firstChild
	if child == nil {
		return nil
	}
	for child.nextSibling != nil {
		child = child.nextSibling
	}
	return child
}

func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.firstChild; child != nil; child = child.nextSibling {
		children = append(children, child)
	}
	return children
}

func (n *Node) NumberOfChildren() int {
	count := 0
	for child := n.firstChild; child != nil; child = child.nextSibling {
		count++
	}
	return count
}

// IsRoot: узел без родителя сам является корнем своего дерева.
func (n *Node) IsRoot() bool { return n.parent == nil }

func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Depth - число предков узла.
func (n *Node) Depth() int {
	depth := 0
	for ancestor := n.parent; ancestor != nil; ancestor = ancestor.parent {
		depth++
	}
	return depth
}

// IsDescendantOf идёт по цепочке родителей. Узел не является потомком себя.
func (n *Node) IsDescendantOf(other *Node) (bool, error) {
	if other == nil {
		return false, precondition("IsDescendantOf", sgferrors.ErrInvalidArgument)
	}
	return n.isDescendantOf(other), nil
}

// IsAncestorOf обходит поддерево узла. Узел не является предком себя.
func (n *Node) IsAncestorOf(other *Node) (bool, error) {
	if other == nil {
		return false, precondition("IsAncestorOf", sgferrors.ErrInvalidArgument)
	}
	return n.subtreeContains(other), nil
}

func (n *Node) isDescendantOf(other *Node) bool {
	for ancestor := n.parent; ancestor != nil; ancestor = ancestor.parent {
		if ancestor == other {
			return true
		}
	}
	return false
}

func (n *Node) subtreeContains(other *Node) bool {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		if child == other || child.subtreeContains(other) {
			return true
		}
	}
	return false
}

// MainVariationNodes возвращает узел и цепочку первых детей до листа.
// Список строится заново при каждом вызове.
func (n *Node) MainVariationNodes() []*Node {
	nodes := []*Node{n}
	for child := n.firstChild; child != nil; child = child.firstChild {
		nodes = append(nodes, child)
	}
	return nodes
}

// Properties возвращает копию списка свойств в порядке добавления.
func (n *Node) Properties() []*Property {
	return append([]*Property(nil), n.properties...)
}

func (n *Node) HasProperties() bool { return len(n.properties) > 0 }

// Property ищет стандартное свойство по типу. Пользовательские свойства
// ищутся только по имени.
func (n *Node) Property(propertyType PropertyType) *Property {
	if propertyType == PropertyTypeUnknown {
		return nil
	}
	for _, p := range n.properties {
		if p.propertyType == propertyType {
			return p
		}
	}
	return nil
}

func (n *Node) PropertyByName(name string) *Property {
	for _, p := range n.properties {
		if p.name == name {
			return p
		}
	}
	return nil
}

func (n *Node) HasProperty(propertyType PropertyType) bool {
	return n.Property(propertyType) != nil
}

func (n *Node) PropertiesByCategory(category PropertyCategory) []*Property {
	var result []*Property
	for _, p := range n.properties {
		if p.Category() == category {
			result = append(result, p)
		}
	}
	return result
}

func (n *Node) indexOfSlot(p *Property) int {
	for i, existing := range n.properties {
		if existing.sameSlot(p) {
			return i
		}
	}
	return -1
}

func (n *Node) checkAttachable(op string, p *Property) error {
	if p == nil {
		return precondition(op, sgferrors.ErrInvalidArgument)
	}
	if p.node != nil && p.node != n {
		return precondition(op, fmt.Errorf("%w: %s", sgferrors.ErrPropertyAttached, p.name))
	}
	return nil
}

// SetProperties заменяет все свойства узла. Список проверяется целиком
// до изменений: nil, дубликаты и чужие свойства отклоняются.
func (n *Node) SetProperties(properties []*Property) error {
	for i, p := range properties {
		if err := n.checkAttachable("SetProperties", p); err != nil {
			return err
		}
		for _, other := range properties[:i] {
			if other.sameSlot(p) {
				return precondition("SetProperties", fmt.Errorf("%w: %s", sgferrors.ErrDuplicateProperty, p.name))
			}
		}
	}

	for _, old := range n.properties {
		old.node = nil
	}
	n.properties = append([]*Property(nil), properties...)
	for _, p := range n.properties {
		p.node = n
	}
	return nil
}

// SetProperty добавляет свойство или заменяет свойство того же типа
// (имени для пользовательских) на его месте.
func (n *Node) SetProperty(p *Property) error {
	if err := n.checkAttachable("SetProperty", p); err != nil {
		return err
	}
	if idx := n.indexOfSlot(p); idx >= 0 {
		old := n.properties[idx]
		if old == p {
			return nil
		}
		old.node = nil
		n.properties[idx] = p
	} else {
		n.properties = append(n.properties, p)
	}
	p.node = n
	return nil
}

func (n *Node) AppendProperty(p *Property) error {
	if err := n.checkAttachable("AppendProperty", p); err != nil {
		return err
	}
	if n.indexOfSlot(p) >= 0 {
		return precondition("AppendProperty", fmt.Errorf("%w: %s", sgferrors.ErrPropertyExists, p.name))
	}
	n.properties = append(n.properties, p)
	p.node = n
	return nil
}

// RemoveProperty удаляет именно этот объект; другое свойство
// того же типа не подходит.
func (n *Node) RemoveProperty(p *Property) error {
	if p == nil {
		return precondition("RemoveProperty", sgferrors.ErrInvalidArgument)
	}
	for i, existing := range n.properties {
		if existing == p {
			n.properties = append(n.properties[:i:i], n.properties[i+1:]...)
			p.node = nil
			return nil
		}
	}
	return precondition("RemoveProperty", fmt.Errorf("%w: %s", sgferrors.ErrPropertyNotFound, p.name))
}

func (n *Node) RemoveAllProperties() {
	for _, p := range n.properties {
		p.node = nil
	}
	n.properties = nil
}

// Traits вычисляется заново при каждом вызове.
func (n *Node) Traits() NodeTraits {
	traits := NodeTraitNone
	if n.parent == nil {
		traits |= NodeTraitRoot
	}
	for _, p := range n.properties {
		traits |= traitsByCategory[p.Category()]
	}
	return traits
}

func (n *Node) HasTrait(trait NodeTraits) bool {
	return n.Traits().Has(trait)
}

// InheritedProperties собирает наследуемые свойства от узла к корню.
// Ближайшее определение типа побеждает; узлы вне пути к корню не участвуют.
func (n *Node) InheritedProperties() []*Property {
	var result []*Property
	for node := n; node != nil; node = node.parent {
		for _, p := range node.properties {
			if p.Category() != PropertyCategoryInheritable {
				continue
			}
			shadowed := false
			for _, nearer := range result {
				if nearer.sameSlot(p) {
					shadowed = true
					break
				}
			}
			if !shadowed {
				result = append(result, p)
			}
		}
	}
	return result
}

// GameInfoNode - ближайший к узлу (включая его самого) узел на пути
// к корню со свойствами game-info, или nil.
func (n *Node) GameInfoNode() *Node {
	for node := n; node != nil; node = node.parent {
		if len(node.PropertiesByCategory(PropertyCategoryGameInfo)) > 0 {
			return node
		}
	}
	return nil
}
