package canonical

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabet(t *testing.T) {
	require.Len(t, Alphabet, 64)

	// Index order must equal ASCII sort order.
	for i := 1; i < len(Alphabet); i++ {
		assert.Less(t, Alphabet[i-1], Alphabet[i])
	}
}

// TestHashDeterminism verifies that identical input always produces
// identical output.
func TestHashDeterminism(t *testing.T) {
	inputs := []string{"", "a", `{"a":1,"b":2}`, strings.Repeat("x", 1000), "héllo wörld"}

	for _, in := range inputs {
		assert.Equal(t, Hash(in, 12), Hash(in, 12))
		assert.Equal(t, Hash(in, 40), Hash(in, 40))
	}
}

func TestHashLength(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{0, 12},
		{-5, 12},
		{5, 12},
		{12, 12},
		{13, 13},
		{64, 64},
	}

	for _, tt := range tests {
		assert.Len(t, Hash("input", tt.requested), tt.want)
	}
}

func TestHashAlphabetMembership(t *testing.T) {
	out := Hash("some canonical payload", 48)
	for i := 0; i < len(out); i++ {
		assert.Contains(t, Alphabet, string(out[i]))
	}
}

func TestHashDistribution(t *testing.T) {
	// Near-identical inputs must not collide.
	seen := map[string]string{}
	for _, in := range []string{"a", "b", "ab", "ba", "aa", "bb", `{"a":1}`, `{"a":2}`} {
		h := Hash(in, 12)
		prev, dup := seen[h]
		require.False(t, dup, "inputs %q and %q collided", in, prev)
		seen[h] = in
	}
}
