package eligibility

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	prev := State{AccountHistory: "previous history"}
	submitted := "submitted history"

	t.Run("validation failure keeps previous history", func(t *testing.T) {
		got := Project(prev, submitted, Decision{}, &ValidationError{Message: MsgValidation})
		assert.Equal(t, State{Error: MsgValidation, AccountHistory: "previous history"}, got)
		assert.False(t, got.HasDecision())
	})

	t.Run("wrapped validation failure", func(t *testing.T) {
		err := fmt.Errorf("form: %w", &ValidationError{Message: MsgValidation})
		got := Project(State{}, submitted, Decision{}, err)
		assert.Equal(t, State{Error: MsgValidation}, got)
	})

	t.Run("inference failure echoes submitted text", func(t *testing.T) {
		got := Project(prev, submitted, Decision{IsEligible: true, Reason: "ignored"}, &InferenceError{Message: MsgInference, Err: errors.New("dial tcp")})
		assert.Equal(t, State{Error: MsgInference, AccountHistory: submitted}, got)
		assert.True(t, got.Failed())
		assert.False(t, got.HasDecision())
	})

	t.Run("unknown error is treated as inference failure", func(t *testing.T) {
		got := Project(prev, submitted, Decision{}, errors.New("boom"))
		assert.Equal(t, MsgInference, got.Error)
		assert.Equal(t, submitted, got.AccountHistory)
	})

	t.Run("decision", func(t *testing.T) {
		got := Project(prev, submitted, Decision{IsEligible: false, Reason: "Frequent overdrafts"}, nil)
		require.True(t, got.HasDecision())
		assert.False(t, *got.IsEligible)
		assert.Equal(t, "Frequent overdrafts", got.Reason)
		assert.Equal(t, submitted, got.AccountHistory)
		assert.Empty(t, got.Error)
	})
}

func TestInferenceErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &InferenceError{Message: MsgInference, Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
	assert.True(t, IsInference(fmt.Errorf("wrap: %w", err)))
	assert.False(t, IsValidation(err))
}
