package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindNotFound             Kind = "not_found"
	KindForbidden            Kind = "forbidden"
	KindDuplicateApplication Kind = "duplicate_application"
	KindDuplicateReview      Kind = "duplicate_review"
	KindConflict             Kind = "conflict"
	KindValidation           Kind = "validation_error"
	KindUnauthorized         Kind = "unauthorized"
)

// Error is returned by services for every failure the caller is expected to
// handle. Anything else reaching a handler is treated as internal.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func NotFound(what string) error {
	return &Error{Kind: KindNotFound, Msg: what + " not found"}
}

func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

func DuplicateApplication() error {
	return &Error{Kind: KindDuplicateApplication, Msg: "you have already applied to this job"}
}

func DuplicateReview() error {
	return &Error{Kind: KindDuplicateReview, Msg: "you have already reviewed this company"}
}

// KindOf returns the kind of the first *Error in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
