package complaint

import "errors"

// Code is a small stable integer identifying a failure kind. Codes are part
// of the wire contract and never renumbered.
type Code int

const (
	CodeNotFound               Code = 1
	CodeNotOwner               Code = 2
	CodeUnauthorized           Code = 3
	CodeAlreadyResolved        Code = 4
	CodeInvalidInput           Code = 5
	CodeInvalidCategory        Code = 6
	CodeInvalidStatus          Code = 7
	CodeCapacityExceeded       Code = 8
	CodeEscalationLimitReached Code = 9
	CodePaymentFailed          Code = 10
)

// Error is a domain failure carrying its stable code. All failures are
// local and non-fatal: no partial state mutation accompanies one.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrNotFound               = &Error{CodeNotFound, "complaint not found"}
	ErrNotOwner               = &Error{CodeNotOwner, "caller is not the complaint owner"}
	ErrUnauthorized           = &Error{CodeUnauthorized, "caller lacks required authorization"}
	ErrAlreadyResolved        = &Error{CodeAlreadyResolved, "complaint already resolved"}
	ErrInvalidInput           = &Error{CodeInvalidInput, "description must be 1-512 characters"}
	ErrInvalidCategory        = &Error{CodeInvalidCategory, "category must not be empty"}
	ErrInvalidStatus          = &Error{CodeInvalidStatus, "invalid status"}
	ErrCapacityExceeded       = &Error{CodeCapacityExceeded, "list capacity exceeded"}
	ErrEscalationLimitReached = &Error{CodeEscalationLimitReached, "escalation level limit reached"}
	ErrPaymentFailed          = &Error{CodePaymentFailed, "escalation fee transfer failed"}
)

// CodeOf extracts the stable code from err, or 0 if err carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return 0
}
