package domain

import (
	"errors"
	"fmt"
)

// ErrCacheMiss is returned by CacheStore implementations when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// ErrInvalidID signals a malformed entity identifier.
var ErrInvalidID = errors.New("invalid id format")

// ValidationError signals missing or malformed required input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// AuthorizationError signals a failed ownership check on a custom plan.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func NewAuthorizationError(format string, args ...interface{}) *AuthorizationError {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

// ServiceError wraps an unexpected error at a service operation boundary so
// infrastructure-specific error shapes never leak to callers. The original
// error stays attached as the cause.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsDomainError reports whether err is one of the expected domain errors that
// must propagate verbatim to callers.
func IsDomainError(err error) bool {
	var ve *ValidationError
	var nf *NotFoundError
	var ae *AuthorizationError
	return errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &ae)
}
