package sgf

import (
	"errors"

	sgferrors "sgfkit/internal/errors"
)

// PreconditionError возвращается структурными операциями до любых изменений.
// errors.Is(err, ErrPreconditionViolated) истинно для любой такой ошибки,
// конкретная причина доступна через Unwrap.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

func (e *PreconditionError) Is(target error) bool {
	return target == sgferrors.ErrPreconditionViolated
}

func precondition(op string, err error) error {
	return &PreconditionError{Op: op, Err: err}
}

// IsPreconditionViolation отличает структурную ошибку от ошибок других классов.
func IsPreconditionViolation(err error) bool {
	return errors.Is(err, sgferrors.ErrPreconditionViolated)
}
