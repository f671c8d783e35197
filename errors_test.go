package sessionkit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := &Error{Op: "Tracker.Process", Kind: KindValidation, Err: ErrNoStore}
	assert.Equal(t, "sessionkit: Tracker.Process (validation): no storage collaborator supplied", err.Error())

	bare := &Error{Op: "Tracker.Process", Kind: KindStorage}
	assert.Equal(t, "sessionkit: Tracker.Process: storage", bare.Error())
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &Error{Op: "op", Kind: KindStorage, Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, inner, errors.Unwrap(err))
}

func TestErrorIsMatching(t *testing.T) {
	err := &Error{Op: "Tracker.Process", Kind: KindValidation, Err: ErrNoStore}

	// Kind-only target matches.
	assert.ErrorIs(t, err, &Error{Kind: KindValidation})

	// Kind plus matching Op matches.
	assert.ErrorIs(t, err, &Error{Op: "Tracker.Process", Kind: KindValidation})

	// Mismatched kind falls through to the underlying error.
	assert.NotErrorIs(t, err, &Error{Kind: KindStorage})
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestErrorAs(t *testing.T) {
	var target *Error
	wrapped := &Error{Op: "LoadConfig", Kind: KindConfiguration, Err: ErrInvalidConfig}

	require.ErrorAs(t, error(wrapped), &target)
	assert.Equal(t, KindConfiguration, target.Kind)
}
