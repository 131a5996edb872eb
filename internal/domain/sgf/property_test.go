package sgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sgferrors "sgfkit/internal/errors"
)

func TestNewPropertyPreconditions(t *testing.T) {
	t.Parallel()

	_, err := NewProperty(PropertyTypeUnknown)
	assert.ErrorIs(t, err, sgferrors.ErrInvalidArgument)

	_, err = NewProperty(PropertyTypeC, nil)
	assert.ErrorIs(t, err, sgferrors.ErrPreconditionViolated)

	var typedNil *SinglePropertyValue
	_, err = NewProperty(PropertyTypeC, typedNil)
	assert.ErrorIs(t, err, sgferrors.ErrInvalidArgument)

	_, err = NewPropertyWithName("")
	assert.ErrorIs(t, err, sgferrors.ErrInvalidArgument)

	named, err := NewPropertyWithName("KM", NewRealValue(6.5))
	require.NoError(t, err)
	assert.Equal(t, PropertyTypeKM, named.Type())
	assert.Equal(t, PropertyCategoryGameInfo, named.Category())
}

func TestPropertyValuesAreCopied(t *testing.T) {
	t.Parallel()

	p := mustProperty(t, PropertyTypeAB, NewGoPointValue(ValueTypeStone, GoPoint{X: 1, Y: 2}))
	values := p.Values()
	values[0] = NewNumberValue(1)
	assert.Equal(t, ValueTypeStone, p.Value().ToSingle().ValueType())

	require.NoError(t, p.AppendValue(NewGoPointValue(ValueTypeStone, GoPoint{X: 3, Y: 4})))
	assert.Len(t, p.Values(), 2)
	assert.Error(t, p.AppendValue(nil))

	require.NoError(t, p.SetValues([]PropertyValue{NewGoPointValue(ValueTypeStone, GoPoint{})}))
	assert.Equal(t, "aa", p.Value().RawValue())

	p.RemoveAllValues()
	assert.False(t, p.HasValues())
	assert.Nil(t, p.Value())
}

func TestPropertyValidate(t *testing.T) {
	t.Parallel()

	composed := func(first, second *SinglePropertyValue) PropertyValue {
		v, err := NewComposedValue(first, second)
		require.NoError(t, err)
		return v
	}

	tests := []struct {
		name         string
		propertyType PropertyType
		gameType     GameType
		values       []PropertyValue
		wantErr      bool
	}{
		{"number", PropertyTypeMN, GameTypeGo, []PropertyValue{NewNumberValue(3)}, false},
		{"wrong kind", PropertyTypeMN, GameTypeGo, []PropertyValue{NewRealValue(3)}, true},
		{"too many for basic", PropertyTypeMN, GameTypeGo, []PropertyValue{NewNumberValue(1), NewNumberValue(2)}, true},
		{"none without values", PropertyTypeKO, GameTypeGo, nil, false},
		{"none with value", PropertyTypeKO, GameTypeGo, []PropertyValue{NewNumberValue(1)}, true},
		{"square size", PropertyTypeSZ, GameTypeGo, []PropertyValue{NewNumberValue(19)}, false},
		{"rect size", PropertyTypeSZ, GameTypeGo, []PropertyValue{composed(NewNumberValue(9), NewNumberValue(13))}, false},
		{"size of text", PropertyTypeSZ, GameTypeGo, []PropertyValue{NewSimpleTextValue("big")}, true},
		{"label list", PropertyTypeLB, GameTypeGo, []PropertyValue{
			composed(NewGoPointValue(ValueTypePoint, GoPoint{}), NewSimpleTextValue("A")),
			composed(NewGoPointValue(ValueTypePoint, GoPoint{X: 1}), NewSimpleTextValue("B")),
		}, false},
		{"label not composed", PropertyTypeLB, GameTypeGo, []PropertyValue{NewSimpleTextValue("A")}, true},
		{"elist of points", PropertyTypeVW, GameTypeGo, []PropertyValue{NewGoPointValue(ValueTypePoint, GoPoint{})}, false},
		{"custom accepts anything", PropertyTypeUnknown, GameTypeGo, []PropertyValue{NewNumberValue(1), NewTextValue("x")}, false},
		{"game specific elsewhere", PropertyTypeKM, GameTypeChess, []PropertyValue{NewTextValue("x")}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &Property{propertyType: tt.propertyType, name: tt.propertyType.ID(), values: tt.values}
			err := p.Validate(tt.gameType)
			if tt.wantErr {
				assert.ErrorIs(t, err, sgferrors.ErrInvalidValueType)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValueConstructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-3", NewNumberValue(-3).RawValue())
	assert.Equal(t, "6.5", NewRealValue(6.5).RawValue())
	assert.Equal(t, "2", NewDoubleValue(DoubleEmphasized).RawValue())
	assert.Equal(t, "W", NewColorValue(ColorWhite).RawValue())
	assert.Equal(t, `a\]b\\`, NewTextValue(`a]b\`).RawValue())
	assert.Equal(t, "", NewGoMoveValue(GoMove{Pass: true}).RawValue())
	assert.Equal(t, "pZ", NewGoPointValue(ValueTypePoint, GoPoint{X: 15, Y: 51}).RawValue())

	text, err := NewSimpleTextValue(`x]`).Text()
	require.NoError(t, err)
	assert.Equal(t, `x]`, text)

	_, err = NewComposedValue(nil, NewNumberValue(1))
	assert.ErrorIs(t, err, sgferrors.ErrPreconditionViolated)

	unknown := NewUnknownValue("raw")
	_, err = unknown.TypedValue()
	assert.ErrorIs(t, err, sgferrors.ErrNoTypedValue)

	encoded, err := ColorBlack.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "B", string(encoded))
}

func TestEncodedPointDecodesBack(t *testing.T) {
	t.Parallel()

	decoder := NewPropertyDecoder(GameTypeGo, BoardSize{Columns: 52, Rows: 52})
	for _, point := range []GoPoint{{X: 0, Y: 0}, {X: 25, Y: 26}, {X: 51, Y: 3}} {
		raw := NewGoPointValue(ValueTypeStone, point).RawValue()
		decoded, err := decoder.DecodeValues(PropertyTypeAB, []string{raw})[0].ToSingle().GoPoint()
		require.NoError(t, err)
		assert.Equal(t, point, decoded)
	}
}
