package frame

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindResourceAccess Kind = iota + 1
	KindAlgorithm
	KindAllocation
)

func (k Kind) String() string {
	switch k {
	case KindResourceAccess:
		return "resource_access"
	case KindAlgorithm:
		return "algorithm"
	case KindAllocation:
		return "allocation"
	default:
		return "unknown"
	}
}

var (
	ErrResourceAccess = errors.New("input buffer inaccessible")
	ErrAlgorithm      = errors.New("image processing failed")
	ErrAllocation     = errors.New("output allocation failed")
)

func (k Kind) sentinel() error {
	switch k {
	case KindResourceAccess:
		return ErrResourceAccess
	case KindAllocation:
		return ErrAllocation
	default:
		return ErrAlgorithm
	}
}

// Failure is the reason a call produced no frame.
type Failure struct {
	Kind Kind
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Kind.sentinel(), f.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (f *Failure) Unwrap() []error {
	return []error{f.Kind.sentinel(), f.Err}
}

func fail(kind Kind, err error) Result {
	return Result{Err: &Failure{Kind: kind, Err: err}}
}

// Result is either a processed frame or the reason there is none.
type Result struct {
	Data []byte
	Err  error
}

func (r Result) OK() bool {
	return r.Err == nil
}
