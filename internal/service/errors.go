package service

import (
	"errors"

	"github.com/carson-networks/budget-api/internal/storage/account"
	"github.com/carson-networks/budget-api/internal/storage/category"
	"github.com/carson-networks/budget-api/internal/storage/transaction"
)

type ErrorKind int

const (
	ErrorKindGeneric ErrorKind = iota
	ErrorKindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNotFound:
		return "not_found"
	default:
		return "generic"
	}
}

// Error tags a failure with the kind callers branch on.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or
// ErrorKindGeneric when there is none.
func KindOf(err error) ErrorKind {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return ErrorKindGeneric
}

// fromStorage tags the storage not-found sentinels. Other errors pass through.
func fromStorage(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, transaction.ErrNotFound) ||
		errors.Is(err, account.ErrNotFound) ||
		errors.Is(err, category.ErrNotFound) {
		return &Error{Kind: ErrorKindNotFound, Err: err}
	}
	return err
}
