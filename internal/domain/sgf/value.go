package sgf

import (
	"fmt"
	"strings"

	sgferrors "sgfkit/internal/errors"
)

// Double - значение типа Double: 1 (обычно) или 2 (сильно).
type Double int

const (
	DoubleNormal     Double = 1
	DoubleEmphasized Double = 2
)

type Color int

const (
	ColorBlack Color = iota
	ColorWhite
)

func (c Color) String() string {
	if c == ColorWhite {
		return "W"
	}
	return "B"
}

// GoPoint - точка на доске Go, нумерация с нуля от левого верхнего угла.
type GoPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GoMove - ход в Go: точка или пас.
type GoMove struct {
	Pass  bool    `json:"pass"`
	Point GoPoint `json:"point"`
}

// PropertyValue - одиночное или составное значение свойства.
type PropertyValue interface {
	IsComposed() bool
	ToSingle() *SinglePropertyValue
	ToComposed() *ComposedPropertyValue
	// RawValue - исходный текст значения; для составного значения
	// обе половины через ":".
	RawValue() string
}

// SinglePropertyValue хранит сырой текст и, если преобразование удалось,
// типизированное значение. При неудаче сохраняется текст ошибки.
type SinglePropertyValue struct {
	valueType    ValueType
	raw          string
	typed        any
	hasTyped     bool
	errorMessage string
}

func newTypedValue(valueType ValueType, raw string, typed any) *SinglePropertyValue {
	return &SinglePropertyValue{valueType: valueType, raw: raw, typed: typed, hasTyped: true}
}

func newFailedValue(valueType ValueType, raw string, message string) *SinglePropertyValue {
	return &SinglePropertyValue{valueType: valueType, raw: raw, errorMessage: message}
}

func NewNumberValue(n int64) *SinglePropertyValue {
	return newTypedValue(ValueTypeNumber, fmt.Sprintf("%d", n), n)
}

func NewRealValue(r float64) *SinglePropertyValue {
	return newTypedValue(ValueTypeReal, formatReal(r), r)
}

func NewDoubleValue(d Double) *SinglePropertyValue {
	return newTypedValue(ValueTypeDouble, fmt.Sprintf("%d", int(d)), d)
}

func NewColorValue(c Color) *SinglePropertyValue {
	return newTypedValue(ValueTypeColor, c.String(), c)
}

// NewSimpleTextValue и NewTextValue принимают текст как есть;
// сырой текст хранится в экранированном виде, как в файле SGF.
func NewSimpleTextValue(s string) *SinglePropertyValue {
	return newTypedValue(ValueTypeSimpleText, escapeText(s), s)
}

func NewTextValue(s string) *SinglePropertyValue {
	return newTypedValue(ValueTypeText, escapeText(s), s)
}

// NewUnknownValue создаёт значение без грамматики: только сырой текст.
func NewUnknownValue(raw string) *SinglePropertyValue {
	return &SinglePropertyValue{valueType: ValueTypeUnknown, raw: raw}
}

// NewGoPointValue кодирует точку буквами SGF (a-z, затем A-Z).
func NewGoPointValue(valueType ValueType, p GoPoint) *SinglePropertyValue {
	return newTypedValue(valueType, encodeGoPoint(p), p)
}

func NewGoMoveValue(m GoMove) *SinglePropertyValue {
	if m.Pass {
		return newTypedValue(ValueTypeMove, "", m)
	}
	return newTypedValue(ValueTypeMove, encodeGoPoint(m.Point), m)
}

func (v *SinglePropertyValue) IsComposed() bool                   { return false }
func (v *SinglePropertyValue) ToSingle() *SinglePropertyValue     { return v }
func (v *SinglePropertyValue) ToComposed() *ComposedPropertyValue { return nil }
func (v *SinglePropertyValue) RawValue() string                   { return v.raw }
func (v *SinglePropertyValue) ValueType() ValueType               { return v.valueType }
func (v *SinglePropertyValue) HasTypedValue() bool                { return v.hasTyped }

// ErrorMessage пуст, если значение удалось преобразовать
// или если для него нет грамматики.
func (v *SinglePropertyValue) ErrorMessage() string { return v.errorMessage }

// TypedValue возвращает преобразованное значение или ErrNoTypedValue.
func (v *SinglePropertyValue) TypedValue() (any, error) {
	if !v.hasTyped {
		return nil, v.noTypedValueError()
	}
	return v.typed, nil
}

func (v *SinglePropertyValue) noTypedValueError() error {
	if v.errorMessage != "" {
		return fmt.Errorf("%w: %s", sgferrors.ErrNoTypedValue, v.errorMessage)
	}
	return fmt.Errorf("%w: value type %s", sgferrors.ErrNoTypedValue, v.valueType)
}

func typedAs[T any](v *SinglePropertyValue) (T, error) {
	var zero T
	if !v.hasTyped {
		return zero, v.noTypedValueError()
	}
	typed, ok := v.typed.(T)
	if !ok {
		return zero, fmt.Errorf("%w: value type is %s", sgferrors.ErrNoTypedValue, v.valueType)
	}
	return typed, nil
}

func (v *SinglePropertyValue) Number() (int64, error)  { return typedAs[int64](v) }
func (v *SinglePropertyValue) Real() (float64, error)  { return typedAs[float64](v) }
func (v *SinglePropertyValue) Double() (Double, error) { return typedAs[Double](v) }
func (v *SinglePropertyValue) Color() (Color, error)   { return typedAs[Color](v) }
func (v *SinglePropertyValue) Text() (string, error)   { return typedAs[string](v) }
func (v *SinglePropertyValue) GoPoint() (GoPoint, error) {
	return typedAs[GoPoint](v)
}
func (v *SinglePropertyValue) GoMove() (GoMove, error) {
	return typedAs[GoMove](v)
}

// ComposedPropertyValue - две одиночные половины через ":".
// Вложенные составные значения невозможны по построению.
// raw заполняет декодер: исходный текст отдаётся как есть,
// даже если разделителя в нём не было.
type ComposedPropertyValue struct {
	first  *SinglePropertyValue
	second *SinglePropertyValue
	raw    string
	hasRaw bool
}

func NewComposedValue(first, second *SinglePropertyValue) (*ComposedPropertyValue, error) {
	if first == nil || second == nil {
		return nil, &PreconditionError{Op: "NewComposedValue", Err: sgferrors.ErrInvalidArgument}
	}
	return &ComposedPropertyValue{first: first, second: second}, nil
}

func (v *ComposedPropertyValue) IsComposed() bool                   { return true }
func (v *ComposedPropertyValue) ToSingle() *SinglePropertyValue     { return nil }
func (v *ComposedPropertyValue) ToComposed() *ComposedPropertyValue { return v }
func (v *ComposedPropertyValue) First() *SinglePropertyValue        { return v.first }
func (v *ComposedPropertyValue) Second() *SinglePropertyValue       { return v.second }

func (v *ComposedPropertyValue) RawValue() string {
	if v.hasRaw {
		return v.raw
	}
	return escapeComposedSeparator(v.first.raw) + ":" + v.second.raw
}

func escapeComposedSeparator(raw string) string {
	if findSeparator(raw) < 0 {
		return raw
	}
	out := make([]byte, 0, len(raw)+1)
	escaped := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if !escaped && c == ':' {
			out = append(out, '\\')
		}
		escaped = !escaped && c == '\\'
		out = append(out, c)
	}
	return string(out)
}

func escapeText(s string) string {
	if !strings.ContainsAny(s, `\]`) {
		return s
	}
	return strings.NewReplacer(`\`, `\\`, `]`, `\]`).Replace(s)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
