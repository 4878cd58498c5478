// Package ref encodes and decodes the opaque reference tokens handed back by
// a submission. A token carries the kind of the referenced record and the run
// uid of the runner job, in the form "<kind>:<uid>".
package ref

import (
	"strings"

	api_v1 "github.com/flowgate/flowgate/api/v1"
)

const separator string = ":"

const KIND_RUN string = "run"

func Encode(kind string, uid string) string {
	return kind + separator + uid
}

// Decode splits a reference token back into its (kind, uid) pair. Malformed
// input fails explicitly with BadReferenceError, never silently.
func Decode(reference string) (string, string, error) {
	parts := strings.SplitN(reference, separator, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", api_v1.BadReferenceError{Reference: reference}
	}
	return parts[0], parts[1], nil
}
