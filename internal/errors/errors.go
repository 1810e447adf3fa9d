package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypeProvider     ErrorType = "PROVIDER"
	ErrTypeAuth         ErrorType = "AUTH"
	ErrTypeRateLimit    ErrorType = "RATE_LIMIT"
	ErrTypeProfileFetch ErrorType = "PROFILE_FETCH"
	ErrTypePersistence  ErrorType = "PERSISTENCE"
	ErrTypeNoResults    ErrorType = "NO_RESULTS"
	ErrTypeInternal     ErrorType = "INTERNAL"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Validation(message string, err error) *DomainError {
	return New(ErrTypeValidation, message, err)
}

func Provider(message string, err error) *DomainError {
	return New(ErrTypeProvider, message, err)
}

func Auth(message string, err error) *DomainError {
	return New(ErrTypeAuth, message, err)
}

func RateLimit(message string, err error) *DomainError {
	return New(ErrTypeRateLimit, message, err)
}

func ProfileFetch(message string, err error) *DomainError {
	return New(ErrTypeProfileFetch, message, err)
}

func Persistence(message string, err error) *DomainError {
	return New(ErrTypePersistence, message, err)
}

func NoResults(message string) *DomainError {
	return New(ErrTypeNoResults, message, nil)
}

func Internal(message string, err error) *DomainError {
	return New(ErrTypeInternal, message, err)
}

// IsType reports whether err or anything it wraps is a DomainError of
// the given type.
func IsType(err error, errType ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == errType
	}
	return false
}

// Retryable reports whether a provider-side failure is worth another
// attempt. Auth rejections and malformed requests never are.
func Retryable(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Type {
		case ErrTypeProvider, ErrTypeRateLimit:
			return true
		default:
			return false
		}
	}
	return true
}
