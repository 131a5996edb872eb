package sgf

// ValueType - базовые виды значений свойств.
type ValueType int

const (
	ValueTypeNone ValueType = iota
	ValueTypeNumber
	ValueTypeReal
	ValueTypeDouble
	ValueTypeColor
	ValueTypeSimpleText
	ValueTypeText
	ValueTypePoint
	ValueTypeMove
	ValueTypeStone
	ValueTypeUnknown
)

var valueTypeNames = [...]string{
	ValueTypeNone:       "none",
	ValueTypeNumber:     "number",
	ValueTypeReal:       "real",
	ValueTypeDouble:     "double",
	ValueTypeColor:      "color",
	ValueTypeSimpleText: "simple-text",
	ValueTypeText:       "text",
	ValueTypePoint:      "point",
	ValueTypeMove:       "move",
	ValueTypeStone:      "stone",
	ValueTypeUnknown:    "unknown",
}

func (v ValueType) String() string {
	if v < 0 || int(v) >= len(valueTypeNames) {
		return "unknown"
	}
	return valueTypeNames[v]
}

// DescriptorType - вариант дескриптора.
type DescriptorType int

const (
	DescriptorTypeBasic DescriptorType = iota
	DescriptorTypeComposed
	DescriptorTypeList
	DescriptorTypeElist
	DescriptorTypeDual
)

func (d DescriptorType) String() string {
	switch d {
	case DescriptorTypeBasic:
		return "basic"
	case DescriptorTypeComposed:
		return "composed"
	case DescriptorTypeList:
		return "list"
	case DescriptorTypeElist:
		return "elist"
	case DescriptorTypeDual:
		return "dual"
	default:
		return "unknown"
	}
}

// ValueTypeDescriptor описывает допустимую форму значений свойства.
// Закрытый набор реализаций: *BasicDescriptor, *ComposedDescriptor,
// *ListDescriptor, *ElistDescriptor, *DualDescriptor. Все экземпляры
// неизменяемы после создания.
type ValueTypeDescriptor interface {
	DescriptorType() DescriptorType
	// CanHaveValueType сообщает, есть ли среди листьев дескриптора Basic(valueType).
	CanHaveValueType(valueType ValueType) bool

	ToBasic() *BasicDescriptor
	ToComposed() *ComposedDescriptor
	ToList() *ListDescriptor
	ToElist() *ElistDescriptor
	ToDual() *DualDescriptor

	sealed()
}

type descriptorBase struct{}

func (descriptorBase) ToBasic() *BasicDescriptor       { return nil }
func (descriptorBase) ToComposed() *ComposedDescriptor { return nil }
func (descriptorBase) ToList() *ListDescriptor         { return nil }
func (descriptorBase) ToElist() *ElistDescriptor       { return nil }
func (descriptorBase) ToDual() *DualDescriptor         { return nil }
func (descriptorBase) sealed()                         {}

type BasicDescriptor struct {
	descriptorBase
	valueType ValueType
}

func newBasicDescriptor(valueType ValueType) *BasicDescriptor {
	return &BasicDescriptor{valueType: valueType}
}

func (d *BasicDescriptor) DescriptorType() DescriptorType { return DescriptorTypeBasic }
func (d *BasicDescriptor) ToBasic() *BasicDescriptor      { return d }
func (d *BasicDescriptor) ValueType() ValueType           { return d.valueType }

func (d *BasicDescriptor) CanHaveValueType(valueType ValueType) bool {
	return d.valueType == valueType
}

// ComposedDescriptor - два базовых значения через ":".
type ComposedDescriptor struct {
	descriptorBase
	first  *BasicDescriptor
	second *BasicDescriptor
}

// newComposedDescriptor паникует при нарушении инвариантов:
// вызывается только при построении таблицы дескрипторов.
func newComposedDescriptor(first, second *BasicDescriptor) *ComposedDescriptor {
	if first == nil || second == nil {
		panic("sgf: composed descriptor requires two basic descriptors")
	}
	if first.valueType == ValueTypeNone || second.valueType == ValueTypeNone {
		panic("sgf: composed descriptor must not contain value type none")
	}
	return &ComposedDescriptor{first: first, second: second}
}

func (d *ComposedDescriptor) DescriptorType() DescriptorType  { return DescriptorTypeComposed }
func (d *ComposedDescriptor) ToComposed() *ComposedDescriptor { return d }
func (d *ComposedDescriptor) First() *BasicDescriptor         { return d.first }
func (d *ComposedDescriptor) Second() *BasicDescriptor        { return d.second }

func (d *ComposedDescriptor) CanHaveValueType(valueType ValueType) bool {
	return d.first.CanHaveValueType(valueType) || d.second.CanHaveValueType(valueType)
}

type ListDescriptor struct {
	descriptorBase
	element ValueTypeDescriptor
}

func newListDescriptor(element ValueTypeDescriptor) *ListDescriptor {
	requireBasicOrComposed(element, "list")
	if basic := element.ToBasic(); basic != nil && basic.valueType == ValueTypeNone {
		panic("sgf: list descriptor must not contain value type none")
	}
	return &ListDescriptor{element: element}
}

func (d *ListDescriptor) DescriptorType() DescriptorType { return DescriptorTypeList }
func (d *ListDescriptor) ToList() *ListDescriptor        { return d }

// Element - дескриптор элемента: *BasicDescriptor или *ComposedDescriptor.
func (d *ListDescriptor) Element() ValueTypeDescriptor { return d.element }

func (d *ListDescriptor) CanHaveValueType(valueType ValueType) bool {
	return d.element.CanHaveValueType(valueType)
}

// ElistDescriptor - пустой список (одно значение "none") или список.
type ElistDescriptor struct {
	descriptorBase
	list *ListDescriptor
}

func newElistDescriptor(list *ListDescriptor) *ElistDescriptor {
	if list == nil {
		panic("sgf: elist descriptor requires a list descriptor")
	}
	return &ElistDescriptor{list: list}
}

func (d *ElistDescriptor) DescriptorType() DescriptorType { return DescriptorTypeElist }
func (d *ElistDescriptor) ToElist() *ElistDescriptor      { return d }
func (d *ElistDescriptor) List() *ListDescriptor          { return d.list }

func (d *ElistDescriptor) CanHaveValueType(valueType ValueType) bool {
	return valueType == ValueTypeNone || d.list.CanHaveValueType(valueType)
}

// DualDescriptor - две альтернативы, выбор по наличию ":" в сыром значении.
type DualDescriptor struct {
	descriptorBase
	first  ValueTypeDescriptor
	second ValueTypeDescriptor
}

func newDualDescriptor(first, second ValueTypeDescriptor) *DualDescriptor {
	requireBasicOrComposed(first, "dual")
	requireBasicOrComposed(second, "dual")
	return &DualDescriptor{first: first, second: second}
}

func (d *DualDescriptor) DescriptorType() DescriptorType { return DescriptorTypeDual }
func (d *DualDescriptor) ToDual() *DualDescriptor        { return d }
func (d *DualDescriptor) First() ValueTypeDescriptor     { return d.first }
func (d *DualDescriptor) Second() ValueTypeDescriptor    { return d.second }

func (d *DualDescriptor) CanHaveValueType(valueType ValueType) bool {
	return d.first.CanHaveValueType(valueType) || d.second.CanHaveValueType(valueType)
}

func requireBasicOrComposed(d ValueTypeDescriptor, owner string) {
	if d == nil {
		panic("sgf: " + owner + " descriptor requires a non-nil element")
	}
	switch d.DescriptorType() {
	case DescriptorTypeBasic, DescriptorTypeComposed:
	default:
		panic("sgf: " + owner + " descriptor element must be basic or composed, got " + d.DescriptorType().String())
	}
}
