package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserErrorMatchesByCode(t *testing.T) {
	detailed := ErrUnknownTier.WithDetails("%q", "Gold")
	wrapped := fmt.Errorf("selecting plan: %w", detailed)

	assert.ErrorIs(t, wrapped, ErrUnknownTier)
	assert.NotErrorIs(t, wrapped, ErrNameRequired)
	assert.Equal(t, `UNKNOWN_TIER: Unknown pricing plan. ("Gold")`, detailed.Error())
	assert.Equal(t, "NAME_REQUIRED: Please enter a restaurant name.", ErrNameRequired.Error())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Restaurant contact number is not available.",
		UserMessage(fmt.Errorf("share: %w", ErrPhoneMissing)))
	assert.Equal(t, "Something went wrong. Please try again.", UserMessage(errors.New("disk full")))
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger := NewLogger("debug", format)
		assert.True(t, logger.Core().Enabled(-1), format)
	}
	assert.False(t, NewLogger("warn", "console").Core().Enabled(0))
}
