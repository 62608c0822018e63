package db

import (
	"errors"

	"gorm.io/gorm"
)

// Kind classifies a store failure for callers that map it to a status code.
type Kind int

const (
	KindStore Kind = iota
	KindValidation
	KindNotFound
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStore      = errors.New("store error")
)

// Error is returned by every Store method.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// Error returns the user-facing message.
func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Op + " failed"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrStore:
		return e.Kind == KindStore
	}
	return false
}

// KindOf reports the Kind of err, KindStore for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

func validationErr(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg}
}

func notFoundErr(op, msg string) error {
	return &Error{Kind: KindNotFound, Op: op, Msg: msg}
}

// storeErr wraps a gorm failure. Errors that are already *Error pass through
// so a transaction callback can return validation and not-found failures.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Op: op, Msg: "record not found", Err: err}
	}
	return &Error{Kind: KindStore, Op: op, Err: err}
}
