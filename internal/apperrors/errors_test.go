package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageIncludesWrapped(t *testing.T) {
	wrapped := errors.New("disk full")
	err := ActionIoFailed("move failed", wrapped)
	assert.Contains(t, err.Error(), "move failed")
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), string(CodeActionIoFailed))
}

func TestErrorMessageWithoutWrapped(t *testing.T) {
	err := RuleNotFound("r1")
	assert.Contains(t, err.Error(), "r1")
	assert.NotContains(t, err.Error(), "<nil>")
}

func TestUnwrapReturnsWrapped(t *testing.T) {
	wrapped := errors.New("boom")
	err := ConfigErr("failed", wrapped)
	assert.Equal(t, wrapped, errors.Unwrap(err))
}

func TestIsMatchesOnCodeAlone(t *testing.T) {
	err := RuleNotFound("r1")
	target := RuleNotFound("other-id")
	assert.True(t, errors.Is(err, target))
}

func TestIsDoesNotMatchDifferentCode(t *testing.T) {
	err := RuleNotFound("r1")
	target := DuplicateRuleID("r1")
	assert.False(t, errors.Is(err, target))
}

func TestActionExecuteFailedIncludesExitCode(t *testing.T) {
	err := ActionExecuteFailed(2)
	assert.Equal(t, "2", err.Details["exit_code"])
}
