package domain

import "fmt"

// ErrorKind classifies a failure for the transport layer.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindInvalidState ErrorKind = "invalid_state" // reported as a conflict with status 400
	KindForbidden    ErrorKind = "forbidden"
	KindUnauthorized ErrorKind = "unauthorized"
)

// Error is a classified, client-facing failure.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Is matches errors of the same kind and message, so wrapped copies created
// with Errorf still compare equal to the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func NewInvalidStateError(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Msg: fmt.Sprintf(format, args...)}
}

// Ticket lifecycle.
var (
	ErrVehicleNotFound       = &Error{Kind: KindNotFound, Msg: "vehicle not found"}
	ErrSpaceNotFound         = &Error{Kind: KindNotFound, Msg: "space not found"}
	ErrSpaceUnavailable      = &Error{Kind: KindInvalidState, Msg: "space unavailable"}
	ErrDuplicateActiveTicket = &Error{Kind: KindInvalidState, Msg: "duplicate active ticket"}
	ErrTariffNotFound        = &Error{Kind: KindNotFound, Msg: "tariff not found"}
	ErrTicketNotFound        = &Error{Kind: KindNotFound, Msg: "ticket not found"}
	ErrTicketAlreadyClosed   = &Error{Kind: KindInvalidState, Msg: "ticket already closed"}
)

// Payment reconciliation.
var (
	ErrTicketNotClosed          = &Error{Kind: KindInvalidState, Msg: "ticket not closed"}
	ErrPaymentAlreadyRegistered = &Error{Kind: KindConflict, Msg: "payment already registered"}
	ErrPaymentTypeNotFound      = &Error{Kind: KindNotFound, Msg: "payment type not found"}
	ErrPaymentNotFound          = &Error{Kind: KindNotFound, Msg: "payment not found"}
)

// Registries.
var (
	ErrClientNotFound       = &Error{Kind: KindNotFound, Msg: "client not found"}
	ErrZoneNotFound         = &Error{Kind: KindNotFound, Msg: "zone not found"}
	ErrFineNotFound         = &Error{Kind: KindNotFound, Msg: "fine not found"}
	ErrReservationNotFound  = &Error{Kind: KindNotFound, Msg: "reservation not found"}
	ErrReservationNotActive = &Error{Kind: KindInvalidState, Msg: "reservation is not active"}
	ErrReservationOverlap   = &Error{Kind: KindConflict, Msg: "space already reserved for the requested period"}
	ErrRoleNotFound         = &Error{Kind: KindNotFound, Msg: "role not found"}
	ErrSystemRole           = &Error{Kind: KindForbidden, Msg: "system roles cannot be deleted"}
	ErrShiftNotFound        = &Error{Kind: KindNotFound, Msg: "shift not found"}
	ErrEmployeeNotFound     = &Error{Kind: KindNotFound, Msg: "employee not found"}
	ErrUserNotFound         = &Error{Kind: KindNotFound, Msg: "user not found"}
	ErrAccessLogNotFound    = &Error{Kind: KindNotFound, Msg: "access record not found"}
	ErrDuplicatePlate       = &Error{Kind: KindConflict, Msg: "a vehicle with this plate already exists"}
	ErrDuplicateSpaceCode   = &Error{Kind: KindConflict, Msg: "a space with this code already exists"}
	ErrDuplicateRoleName    = &Error{Kind: KindConflict, Msg: "a role with this name already exists"}
	ErrDuplicatePaymentType = &Error{Kind: KindConflict, Msg: "a payment type with this name already exists"}
	ErrDuplicateDPI         = &Error{Kind: KindConflict, Msg: "an employee with this DPI already exists"}
	ErrUserAlreadyEmployee  = &Error{Kind: KindConflict, Msg: "user is already registered as an employee"}
)

// Auth.
var (
	ErrEmailAlreadyRegistered = &Error{Kind: KindConflict, Msg: "email already registered"}
	ErrInvalidCredentials     = &Error{Kind: KindUnauthorized, Msg: "invalid email or password"}
	ErrUserInactive           = &Error{Kind: KindForbidden, Msg: "user is inactive"}
	ErrTokenMissing           = &Error{Kind: KindForbidden, Msg: "token not provided"}
	ErrTokenMalformed         = &Error{Kind: KindForbidden, Msg: "authorization header must be: Bearer <token>"}
	ErrTokenExpired           = &Error{Kind: KindUnauthorized, Msg: "token expired"}
	ErrTokenInvalid           = &Error{Kind: KindUnauthorized, Msg: "invalid token"}
	ErrAccessDenied           = &Error{Kind: KindForbidden, Msg: "access denied"}
)

// ErrInUse reports a delete blocked by rows that still reference the entity.
func ErrInUse(entity string, count int, dependents string) *Error {
	return NewInvalidStateError("cannot delete %s: %d %s still reference it", entity, count, dependents)
}
