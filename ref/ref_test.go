package ref

import (
	"testing"

	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, pair := range [][2]string{
		{KIND_RUN, "abc123"},
		{KIND_RUN, "6b8c1f2e-97a4-4d57-b0d1-0b1f53f0a001"},
		{"schedule", "weekly-report"},
		{KIND_RUN, "uid:with:colons"},
	} {
		token := Encode(pair[0], pair[1])
		kind, uid, err := Decode(token)
		require.NoError(t, err)
		require.Equal(t, pair[0], kind)
		require.Equal(t, pair[1], uid)
	}
}

func TestDecodeFailsExplicitly(t *testing.T) {
	for _, malformed := range []string{
		"",
		"abc123",
		":abc123",
		"run:",
		":",
	} {
		_, _, err := Decode(malformed)
		require.Error(t, err)
		_, ok := err.(api_v1.BadReferenceError)
		require.True(t, ok, "expected BadReferenceError for %q", malformed)
	}
}
