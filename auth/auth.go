// Package auth declares the contract this service requires of the external
// identity and permission verifier. Verification itself happens elsewhere,
// the submission path only cares that every check passes before any mutation.
package auth

import (
	"context"
	"net/http"
)

type Resource string

const RESOURCE_RUN Resource = "run"
const RESOURCE_WORKFLOW Resource = "workflow"

type Action string

const ACTION_CREATE Action = "create"
const ACTION_READ Action = "read"

// Context carries the caller identity extracted from the inbound request.
type Context struct {
	Username string
	Session  string
}

func FromRequest(r *http.Request) Context {
	return Context{
		Username: r.Header.Get("x-flowgate-username"),
		Session:  r.Header.Get("x-flowgate-session"),
	}
}

func (c Context) SetHeaders(r *http.Request) {
	if c.Username != "" {
		r.Header.Set("x-flowgate-username", c.Username)
	}
	if c.Session != "" {
		r.Header.Set("x-flowgate-session", c.Session)
	}
}

type Verifier interface {
	CheckPermission(ctx context.Context, resource Resource, project string, name string, action Action, authCtx Context) error
}

// OpenVerifier allows everything. It is the default when no external verifier
// is configured.
type OpenVerifier struct{}

var _ Verifier = OpenVerifier{}

func (OpenVerifier) CheckPermission(ctx context.Context, resource Resource, project string, name string, action Action, authCtx Context) error {
	return nil
}
