package api_v1

import (
	"errors"
	"fmt"
	"net/http"
)

// statusCoder is implemented by every error this service surfaces over HTTP.
type statusCoder interface {
	HTTPStatus() int
}

type NotFoundError struct {
	Kind string
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Name)
}

func (e NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

type PermissionDeniedError struct {
	Resource string
	Name     string
	Action   string
}

func (e PermissionDeniedError) Error() string {
	return fmt.Sprintf("not allowed to %s %s %s", e.Action, e.Resource, e.Name)
}

func (e PermissionDeniedError) HTTPStatus() int {
	return http.StatusForbidden
}

type BadReferenceError struct {
	Reference string
}

func (e BadReferenceError) Error() string {
	return fmt.Sprintf("malformed reference %q", e.Reference)
}

func (e BadReferenceError) HTTPStatus() int {
	return http.StatusBadRequest
}

type UnsupportedEngineError struct {
	Engine string
}

func (e UnsupportedEngineError) Error() string {
	return fmt.Sprintf("workflow id resolution is not supported for engine %s", e.Engine)
}

func (e UnsupportedEngineError) HTTPStatus() int {
	return http.StatusBadRequest
}

// ExecutionError is the single failure class reported for anything that goes
// wrong while creating, triggering or scheduling a runner against the
// execution backend. The root cause is kept in the message, callers never see
// partial state for one submission.
type ExecutionError struct {
	Workflow string
	Action   string
	Cause    error
}

func (e ExecutionError) Error() string {
	return fmt.Sprintf("workflow %s failed on %s: %v", e.Workflow, e.Action, e.Cause)
}

func (e ExecutionError) Unwrap() error {
	return e.Cause
}

func (e ExecutionError) HTTPStatus() int {
	return http.StatusBadRequest
}

// HTTPStatus maps an error to its HTTP status code, defaulting to 500 for
// anything that does not declare one.
func HTTPStatus(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatus()
	}
	return http.StatusInternalServerError
}
