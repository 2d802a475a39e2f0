package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := NewSessionID()
		require.NoError(t, err)
		assert.Len(t, id, 8)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(idAlphabet, r), "unexpected character %q", r)
		}
		seen[id] = true
	}
	// 100 draws from 64^8 should never collide.
	assert.Len(t, seen, 100)
}
