package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSerializeKeyOrder verifies that insertion order never affects output.
func TestSerializeKeyOrder(t *testing.T) {
	a, err := Serialize(map[string]int{"a": 1, "b": 2})
	require.NoError(t, err)

	b, err := Serialize(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, `{"a":1,"b":2}`, a)
}

func TestSerializeScalars(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "null"},
		{"int", 42, "42"},
		{"negative", -7, "-7"},
		{"float", 1.5, "1.5"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"string", "hello", `"hello"`},
		{"string with quote", `a"b`, `"a\"b"`},
		{"empty string", "", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerializeSequences(t *testing.T) {
	t.Run("order preserved", func(t *testing.T) {
		got, err := Serialize([]int{3, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, "[3,1,2]", got)
	})

	t.Run("mixed elements", func(t *testing.T) {
		got, err := Serialize([]any{1, "two", nil, true})
		require.NoError(t, err)
		assert.Equal(t, `[1,"two",null,true]`, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := Serialize([]int{})
		require.NoError(t, err)
		assert.Equal(t, "[]", got)
	})
}

func TestSerializeNested(t *testing.T) {
	value := map[string]any{
		"z": []any{map[string]any{"b": 2, "a": 1}},
		"a": map[string]any{"nested": []int{1, 2}},
	}

	got, err := Serialize(value)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"nested":[1,2]},"z":[{"a":1,"b":2}]}`, got)
}

func TestSerializeStruct(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	// Struct fields normalize through their JSON form, then sort by key.
	got, err := Serialize(payload{Name: "x", Count: 3})
	require.NoError(t, err)
	assert.Equal(t, `{"count":3,"name":"x"}`, got)
}

func TestSerializeUnsupported(t *testing.T) {
	_, err := Serialize(func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported value")
}
