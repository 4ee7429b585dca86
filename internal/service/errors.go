package service

// errors.go
// Typed domain errors for the lifecycle core. Handlers map these to HTTP
// status codes in one place; everything else compares with errors.As.
// All of them are detected before any write, so a rejected operation never
// leaves a partial mutation behind.

import "fmt"

// ValidationError — malformed input (empty item list, non-positive quantity,
// missing required comment). A client error, never logged as a system fault.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func errValidation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError — the referenced entity does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// AuthorizationError — a policy check failed. The message never reveals
// whether the entity exists beyond what the actor may already see.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

func errForbidden(msg string) error { return &AuthorizationError{Msg: msg} }

// ConflictError — optimistic-lock token mismatch. Clients re-fetch and retry.
type ConflictError struct{}

func (e *ConflictError) Error() string {
	return "requisition has been modified by another user; refresh and retry"
}

// BusinessRuleError — the operation is well-formed and authorized but violates
// a lifecycle rule (closing with unreceived items, illegal transition).
type BusinessRuleError struct {
	Msg string
}

func (e *BusinessRuleError) Error() string { return e.Msg }

func errBusinessRule(format string, args ...any) error {
	return &BusinessRuleError{Msg: fmt.Sprintf(format, args...)}
}
