package sgf

import (
	"fmt"

	sgferrors "sgfkit/internal/errors"
)

// Property - свойство узла: тип, имя и упорядоченный список значений.
// Свойство принадлежит не более чем одному узлу; перенос в другой узел
// не поддерживается, нужно создать новое свойство.
type Property struct {
	propertyType PropertyType
	name         string
	values       []PropertyValue
	node         *Node
}

// NewProperty создаёт стандартное свойство. Для пользовательских свойств
// используется NewPropertyWithName.
func NewProperty(propertyType PropertyType, values ...PropertyValue) (*Property, error) {
	if propertyType == PropertyTypeUnknown || !propertyType.isValid() {
		return nil, precondition("NewProperty", fmt.Errorf("%w: property type %d", sgferrors.ErrInvalidArgument, propertyType))
	}
	if err := checkValues("NewProperty", values); err != nil {
		return nil, err
	}
	return &Property{
		propertyType: propertyType,
		name:         propertyType.ID(),
		values:       append([]PropertyValue(nil), values...),
	}, nil
}

// NewPropertyWithName определяет тип по идентификатору SGF;
// неизвестное имя даёт пользовательское свойство.
func NewPropertyWithName(name string, values ...PropertyValue) (*Property, error) {
	if name == "" {
		return nil, precondition("NewPropertyWithName", fmt.Errorf("%w: empty property name", sgferrors.ErrInvalidArgument))
	}
	if err := checkValues("NewPropertyWithName", values); err != nil {
		return nil, err
	}
	return &Property{
		propertyType: PropertyTypeFromID(name),
		name:         name,
		values:       append([]PropertyValue(nil), values...),
	}, nil
}

func checkValues(op string, values []PropertyValue) error {
	for i, v := range values {
		if v == nil || (!v.IsComposed() && v.ToSingle() == nil) || (v.IsComposed() && v.ToComposed() == nil) {
			return precondition(op, fmt.Errorf("%w: value %d", sgferrors.ErrInvalidArgument, i))
		}
	}
	return nil
}

func (p *Property) Type() PropertyType         { return p.propertyType }
func (p *Property) Name() string               { return p.name }
func (p *Property) Category() PropertyCategory { return p.propertyType.Category() }
func (p *Property) IsCustom() bool             { return p.propertyType == PropertyTypeUnknown }

// Node возвращает узел-владелец или nil.
func (p *Property) Node() *Node { return p.node }

func (p *Property) Values() []PropertyValue {
	return append([]PropertyValue(nil), p.values...)
}

func (p *Property) HasValues() bool { return len(p.values) > 0 }

// Value - первое значение или nil.
func (p *Property) Value() PropertyValue {
	if len(p.values) == 0 {
		return nil
	}
	return p.values[0]
}

func (p *Property) SetValues(values []PropertyValue) error {
	if err := checkValues("SetValues", values); err != nil {
		return err
	}
	p.values = append([]PropertyValue(nil), values...)
	return nil
}

func (p *Property) AppendValue(value PropertyValue) error {
	if err := checkValues("AppendValue", []PropertyValue{value}); err != nil {
		return err
	}
	p.values = append(p.values, value)
	return nil
}

func (p *Property) RemoveAllValues() {
	p.values = nil
}

// sameSlot: стандартные свойства совпадают по типу,
// пользовательские - по имени.
func (p *Property) sameSlot(other *Property) bool {
	if p.propertyType != other.propertyType {
		return false
	}
	if p.propertyType == PropertyTypeUnknown {
		return p.name == other.name
	}
	return true
}

// Validate сверяет значения с грамматикой свойства для данной игры.
// Используется для значений, собранных клиентом вручную.
func (p *Property) Validate(gameType GameType) error {
	descriptor := DescriptorFor(p.propertyType, gameType)
	if descriptor == DescriptorUnknown {
		return nil
	}

	switch descriptor.DescriptorType() {
	case DescriptorTypeBasic, DescriptorTypeComposed, DescriptorTypeDual:
		if len(p.values) > 1 {
			return fmt.Errorf("property %s: %w: expected at most one value, got %d", p.name, sgferrors.ErrInvalidValueType, len(p.values))
		}
	}
	if basic := descriptor.ToBasic(); basic != nil && basic.ValueType() == ValueTypeNone && len(p.values) > 0 {
		return fmt.Errorf("property %s: %w: expected no value", p.name, sgferrors.ErrInvalidValueType)
	}

	for _, value := range p.values {
		if !descriptorAccepts(descriptor, value) {
			return fmt.Errorf("property %s: %w: %s", p.name, sgferrors.ErrInvalidValueType, describeValueShape(value))
		}
	}
	return nil
}

func descriptorAccepts(descriptor ValueTypeDescriptor, value PropertyValue) bool {
	switch d := descriptor.(type) {
	case *BasicDescriptor:
		single := value.ToSingle()
		return single != nil && (d.valueType == ValueTypeUnknown || d.CanHaveValueType(single.valueType))
	case *ComposedDescriptor:
		composed := value.ToComposed()
		return composed != nil &&
			d.first.CanHaveValueType(composed.first.valueType) &&
			d.second.CanHaveValueType(composed.second.valueType)
	case *ListDescriptor:
		return descriptorAccepts(d.element, value)
	case *ElistDescriptor:
		return descriptorAccepts(d.list, value)
	case *DualDescriptor:
		return descriptorAccepts(d.first, value) || descriptorAccepts(d.second, value)
	default:
		return false
	}
}

func describeValueShape(value PropertyValue) string {
	if composed := value.ToComposed(); composed != nil {
		return fmt.Sprintf("composed %s:%s", composed.first.valueType, composed.second.valueType)
	}
	return "single " + value.ToSingle().valueType.String()
}
