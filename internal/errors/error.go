package errors

import "errors"

// Структурные ошибки: дерево остаётся без изменений.
var (
	ErrPreconditionViolated = errors.New("precondition violated")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrCycle                = errors.New("operation would create a cycle in the game tree")
	ErrNotChild             = errors.New("node is not a child of the subject node")
	ErrNoParent             = errors.New("node has no parent")
	ErrPropertyExists       = errors.New("property with the same type or name already exists")
	ErrPropertyNotFound     = errors.New("property is not attached to the node")
	ErrPropertyAttached     = errors.New("property is already attached to another node")
	ErrDuplicateProperty    = errors.New("property list contains duplicate type or name")
)

// Ошибки значений.
var (
	ErrNoTypedValue     = errors.New("property value has no typed value")
	ErrInvalidValueType = errors.New("value type is not allowed for property")
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrGameNotFound     = errors.New("game not found in document")
	ErrInvalidDocument  = errors.New("invalid raw document")
	ErrCacheMiss        = errors.New("sgf text is not cached")
	ErrInternal         = errors.New("internal error")
)
