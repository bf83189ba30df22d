package types

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	InputErrorKind ErrorKind = iota + 1
	ConfigurationErrorKind
	IOErrorKind
)

func (k ErrorKind) String() string {
	switch k {
	case InputErrorKind:
		return "input error"
	case ConfigurationErrorKind:
		return "configuration error"
	case IOErrorKind:
		return "io error"
	default:
		return "error"
	}
}

var (
	ErrEmptyTable          = errors.New("table has no data rows")
	ErrColumnMismatch      = errors.New("inconsistent column count")
	ErrNoCategoricalColumn = errors.New("no categorical column available for questions")
	ErrInvalidBlockSize    = errors.New("block size must be positive")
	ErrNoSubjectColumn     = errors.New("no column other than the identifier and categorical column can be asked about")
)

// Error carries the failure class, the operation and the file or table it
// happened on.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func InputError(op, path string, err error) error {
	return &Error{Kind: InputErrorKind, Op: op, Path: path, Err: err}
}

func ConfigurationError(op string, err error) error {
	return &Error{Kind: ConfigurationErrorKind, Op: op, Err: err}
}

func IOError(op, path string, err error) error {
	return &Error{Kind: IOErrorKind, Op: op, Path: path, Err: err}
}

// IsKind reports whether any error in err's chain is an *Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
