package rawsgf

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"sgfkit/internal/errors"
)

// Collection - результат внешнего парсера: одна или несколько партий из файла.
type Collection struct {
	GameTrees []*GameTree `json:"game_trees" bson:"game_trees" validate:"required,min=1,dive,required"`
}

// GameTree представляет одно дерево в SGF (последовательность узлов + варианты)
type GameTree struct {
	Nodes    []Node      `json:"nodes" bson:"nodes" validate:"required,min=1,dive"`
	Children []*GameTree `json:"children,omitempty" bson:"children,omitempty" validate:"dive,required"`
}

// Node - один узел SGF; порядок свойств сохраняется.
type Node struct {
	Properties []Property `json:"properties" bson:"properties" validate:"dive"`
}

// Property - идентификатор и сырые значения: AB[aa][bb] -> {"AB", ["aa", "bb"]}.
type Property struct {
	ID     string   `json:"id" bson:"id" validate:"required,max=32,alpha"`
	Values []string `json:"values" bson:"values" validate:"required,min=1,dive,sgfraw"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("sgfraw", validateRawValue)
	return v
}

// validateRawValue пропускает только значения в том виде, в каком они стоят
// между скобками в файле: "]" экранирован, одиночный "\" в конце не висит.
func validateRawValue(fl validator.FieldLevel) bool {
	return IsEscaped(fl.Field().String())
}

// IsEscaped сообщает, можно ли записать значение в [] без изменений.
func IsEscaped(raw string) bool {
	escaped := false
	for i := 0; i < len(raw); i++ {
		switch {
		case escaped:
			escaped = false
		case raw[i] == '\\':
			escaped = true
		case raw[i] == ']':
			return false
		}
	}
	return !escaped
}

func (c *Collection) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidDocument, err)
	}
	return nil
}

// Values возвращает значения первого свойства с данным идентификатором.
func (n *Node) Values(id string) ([]string, bool) {
	for _, p := range n.Properties {
		if p.ID == id {
			return p.Values, true
		}
	}
	return nil, false
}
