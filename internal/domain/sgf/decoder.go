package sgf

import (
	"fmt"
	"strconv"
	"strings"

	sgferrors "sgfkit/internal/errors"
)

// PropertyDecoder превращает сырые значения из внешнего парсера
// в типизированные значения свойств.
//
// Контракт с парсером: одна строка на каждое значение в скобках
// (AB[aa][bb] -> ["aa", "bb"]), пустое значение ([]) приходит как "",
// экранирование обратной косой чертой сохранено, сжатые списки точек
// уже развёрнуты. Некорректный ввод не прерывает разбор: значение
// сохраняет сырой текст и сообщение об ошибке.
//
// Декодер не имеет изменяемого состояния и может использоваться
// из нескольких горутин.
type PropertyDecoder struct {
	gameType  GameType
	boardSize BoardSize
}

func NewPropertyDecoder(gameType GameType, boardSize BoardSize) *PropertyDecoder {
	return &PropertyDecoder{gameType: gameType, boardSize: boardSize}
}

func (d *PropertyDecoder) GameType() GameType   { return d.gameType }
func (d *PropertyDecoder) BoardSize() BoardSize { return d.boardSize }

func (d *PropertyDecoder) Descriptor(propertyType PropertyType) ValueTypeDescriptor {
	return DescriptorFor(propertyType, d.gameType)
}

// DecodeProperty создаёт свойство по идентификатору SGF. Ошибка возможна
// только при пустом идентификаторе; ошибки значений хранятся в значениях.
func (d *PropertyDecoder) DecodeProperty(id string, rawValues []string) (*Property, error) {
	if id == "" {
		return nil, precondition("DecodeProperty", fmt.Errorf("%w: empty property id", sgferrors.ErrInvalidArgument))
	}
	return &Property{
		propertyType: PropertyTypeFromID(id),
		name:         id,
		values:       d.DecodeValues(PropertyTypeFromID(id), rawValues),
	}, nil
}

func (d *PropertyDecoder) DecodeValues(propertyType PropertyType, rawValues []string) []PropertyValue {
	return d.decodeWith(d.Descriptor(propertyType), rawValues)
}

func (d *PropertyDecoder) decodeWith(descriptor ValueTypeDescriptor, rawValues []string) []PropertyValue {
	switch desc := descriptor.(type) {
	case *ElistDescriptor:
		if isEmptyOccurrence(rawValues) {
			return []PropertyValue{}
		}
		return d.decodeWith(desc.list, rawValues)
	case *ListDescriptor:
		return d.decodeEach(desc.element, rawValues)
	default:
		return d.decodeEach(descriptor, rawValues)
	}
}

func isEmptyOccurrence(rawValues []string) bool {
	return len(rawValues) == 0 || (len(rawValues) == 1 && rawValues[0] == "")
}

func (d *PropertyDecoder) decodeEach(descriptor ValueTypeDescriptor, rawValues []string) []PropertyValue {
	values := make([]PropertyValue, 0, len(rawValues))
	for _, raw := range rawValues {
		if value := d.decodeValue(descriptor, raw); value != nil {
			values = append(values, value)
		}
	}
	return values
}

// decodeValue возвращает nil для пустого значения типа none:
// такое значение означает отсутствие значения.
func (d *PropertyDecoder) decodeValue(descriptor ValueTypeDescriptor, raw string) PropertyValue {
	switch desc := descriptor.(type) {
	case *BasicDescriptor:
		if desc.valueType == ValueTypeNone && raw == "" {
			return nil
		}
		return d.decodeSingle(desc.valueType, raw)
	case *ComposedDescriptor:
		return d.decodeComposed(desc, raw)
	case *DualDescriptor:
		return d.decodeValue(chooseDualAlternative(desc, raw), raw)
	case *ListDescriptor:
		return d.decodeValue(desc.element, raw)
	case *ElistDescriptor:
		return d.decodeValue(desc.list.element, raw)
	default:
		return NewUnknownValue(raw)
	}
}

// chooseDualAlternative выбирает альтернативу по наличию разделителя
// на верхнем уровне.
func chooseDualAlternative(desc *DualDescriptor, raw string) ValueTypeDescriptor {
	wantComposed := findSeparator(raw) >= 0
	for _, alternative := range []ValueTypeDescriptor{desc.first, desc.second} {
		if (alternative.DescriptorType() == DescriptorTypeComposed) == wantComposed {
			return alternative
		}
	}
	return desc.first
}

func (d *PropertyDecoder) decodeComposed(desc *ComposedDescriptor, raw string) PropertyValue {
	idx := findSeparator(raw)
	if idx < 0 {
		first := newFailedValue(desc.first.valueType, raw, fmt.Sprintf("composed value %q has no ':' separator", raw))
		second := newFailedValue(desc.second.valueType, "", "missing second half of composed value")
		return &ComposedPropertyValue{first: first, second: second, raw: raw, hasRaw: true}
	}
	return &ComposedPropertyValue{
		first:  d.decodeSingle(desc.first.valueType, unescapeSeparator(raw[:idx])),
		second: d.decodeSingle(desc.second.valueType, raw[idx+1:]),
		raw:    raw,
		hasRaw: true,
	}
}

func (d *PropertyDecoder) decodeSingle(valueType ValueType, raw string) *SinglePropertyValue {
	switch valueType {
	case ValueTypeNone:
		return newFailedValue(valueType, raw, fmt.Sprintf("expected empty value, got %q", raw))
	case ValueTypeNumber:
		if n, ok := parseNumber(raw); ok {
			return newTypedValue(valueType, raw, n)
		}
		return newFailedValue(valueType, raw, fmt.Sprintf("invalid number value %q", raw))
	case ValueTypeReal:
		if r, ok := parseReal(raw); ok {
			return newTypedValue(valueType, raw, r)
		}
		return newFailedValue(valueType, raw, fmt.Sprintf("invalid real value %q", raw))
	case ValueTypeDouble:
		switch raw {
		case "1":
			return newTypedValue(valueType, raw, DoubleNormal)
		case "2":
			return newTypedValue(valueType, raw, DoubleEmphasized)
		}
		return newFailedValue(valueType, raw, fmt.Sprintf("invalid double value %q, expected 1 or 2", raw))
	case ValueTypeColor:
		switch raw {
		case "B":
			return newTypedValue(valueType, raw, ColorBlack)
		case "W":
			return newTypedValue(valueType, raw, ColorWhite)
		}
		return newFailedValue(valueType, raw, fmt.Sprintf("invalid color value %q, expected B or W", raw))
	case ValueTypeSimpleText:
		return newTypedValue(valueType, raw, simpleText(raw))
	case ValueTypeText:
		return newTypedValue(valueType, raw, unescapeText(raw))
	case ValueTypePoint, ValueTypeStone, ValueTypeMove:
		return d.decodeGameSpecific(valueType, raw)
	default:
		return NewUnknownValue(raw)
	}
}

// decodeGameSpecific разбирает точки только для Go, для остальных игр
// типизированным значением остаётся сырой текст.
func (d *PropertyDecoder) decodeGameSpecific(valueType ValueType, raw string) *SinglePropertyValue {
	if d.gameType != GameTypeGo {
		return newTypedValue(valueType, raw, raw)
	}

	if valueType == ValueTypeMove && isGoPass(raw, d.boardSize) {
		return newTypedValue(valueType, raw, GoMove{Pass: true})
	}

	point, err := decodeGoPoint(raw, d.boardSize)
	if err != nil {
		return newFailedValue(valueType, raw, err.Error())
	}
	if valueType == ValueTypeMove {
		return newTypedValue(valueType, raw, GoMove{Point: point})
	}
	return newTypedValue(valueType, raw, point)
}

func isGoPass(raw string, boardSize BoardSize) bool {
	if raw == "" {
		return true
	}
	// "tt" считается пасом только на досках не больше 19x19.
	return raw == "tt" && (boardSize.IsNone() || (boardSize.Columns <= 19 && boardSize.Rows <= 19))
}

const maxGoBoardAxis = 52

func decodeGoPoint(raw string, boardSize BoardSize) (GoPoint, error) {
	if len(raw) != 2 {
		return GoPoint{}, fmt.Errorf("invalid point %q, expected two letters", raw)
	}
	x, okX := goCoordinate(raw[0])
	y, okY := goCoordinate(raw[1])
	if !okX || !okY {
		return GoPoint{}, fmt.Errorf("invalid point %q, expected letters a-z or A-Z", raw)
	}

	columns, rows := maxGoBoardAxis, maxGoBoardAxis
	if !boardSize.IsNone() {
		columns, rows = boardSize.Columns, boardSize.Rows
	}
	if x >= columns || y >= rows {
		return GoPoint{}, fmt.Errorf("point %q is outside of the %s board", raw, boardSize)
	}
	return GoPoint{X: x, Y: y}, nil
}

func goCoordinate(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 26, true
	default:
		return 0, false
	}
}

func encodeGoPoint(p GoPoint) string {
	return string([]byte{goLetter(p.X), goLetter(p.Y)})
}

func goLetter(coordinate int) byte {
	if coordinate < 26 {
		return byte('a' + coordinate)
	}
	return byte('A' + coordinate - 26)
}

// findSeparator ищет первый неэкранированный ':'.
func findSeparator(raw string) int {
	escaped := false
	for i := 0; i < len(raw); i++ {
		switch {
		case escaped:
			escaped = false
		case raw[i] == '\\':
			escaped = true
		case raw[i] == ':':
			return i
		}
	}
	return -1
}

func unescapeSeparator(raw string) string {
	return strings.ReplaceAll(raw, `\:`, ":")
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// scanSign пропускает пробелы и знак, возвращает позицию первого символа числа.
func scanSign(raw string) (start, signEnd int) {
	i := 0
	for i < len(raw) && isSpace(raw[i]) {
		i++
	}
	start = i
	if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
		i++
	}
	return start, i
}

func scanDigits(raw string, i int) int {
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	return i
}

// parseNumber читает целое, пока тянется корректная запись: "4abc2" -> 4.
func parseNumber(raw string) (int64, bool) {
	start, i := scanSign(raw)
	end := scanDigits(raw, i)
	if end == i {
		return 0, false
	}
	n, err := strconv.ParseInt(raw[start:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseReal(raw string) (float64, bool) {
	start, i := scanSign(raw)
	end := scanDigits(raw, i)
	digits := end - i
	if end < len(raw) && raw[end] == '.' {
		fractionEnd := scanDigits(raw, end+1)
		digits += fractionEnd - end - 1
		if fractionEnd > end+1 {
			end = fractionEnd
		}
	}
	if digits == 0 {
		return 0, false
	}
	r, err := strconv.ParseFloat(raw[start:end], 64)
	if err != nil {
		return 0, false
	}
	return r, true
}

func formatReal(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// unescapeText убирает экранирование и мягкие переносы строк.
func unescapeText(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			sb.WriteByte(c)
			continue
		}
		i++
		next := raw[i]
		switch next {
		case '\n':
			if i+1 < len(raw) && raw[i+1] == '\r' {
				i++
			}
		case '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		default:
			sb.WriteByte(next)
		}
	}
	return sb.String()
}

func simpleText(raw string) string {
	text := unescapeText(raw)
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n\r", " ")
	return strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(text)
}
