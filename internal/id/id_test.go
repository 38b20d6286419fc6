package id

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidV4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewUUIDFormat(t *testing.T) {
	for range 100 {
		u := NewUUID()

		require.Len(t, u, 36)
		assert.Regexp(t, uuidV4Pattern, u)

		for _, pos := range []int{8, 13, 18, 23} {
			assert.Equal(t, byte('-'), u[pos])
		}
	}
}

func TestNewUUIDUnique(t *testing.T) {
	const n = 10000

	seen := make(map[string]struct{}, n)

	for range n {
		u := NewUUID()

		_, dup := seen[u]
		require.False(t, dup, "duplicate uuid %s", u)

		seen[u] = struct{}{}
	}
}
