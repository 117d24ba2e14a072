package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalRule(id string) Rule {
	return Rule{
		ID:      id,
		Name:    "rule " + id,
		Enabled: true,
		Then:    []Action{{Skip: &SkipAction{}}},
	}
}

func TestValidateRequiresID(t *testing.T) {
	r := minimalRule("")
	err := Validate(&r, nil)
	require.Error(t, err)
}

func TestValidateDefaultsPriority(t *testing.T) {
	r := minimalRule("r1")
	r.Priority = 0
	require.NoError(t, Validate(&r, nil))
	assert.Equal(t, 1, r.Priority)
}

func TestValidateRequiresNonEmptyThen(t *testing.T) {
	r := minimalRule("r1")
	r.Then = nil
	require.Error(t, Validate(&r, nil))
}

func TestValidateRejectsActionWithNoKind(t *testing.T) {
	r := minimalRule("r1")
	r.Then = []Action{{}}
	require.Error(t, Validate(&r, nil))
}

func TestValidateMoveRequiresTo(t *testing.T) {
	r := minimalRule("r1")
	r.Then = []Action{{Move: &MoveAction{}}}
	require.Error(t, Validate(&r, nil))
}

func TestValidateRenameRejectsBadTemplate(t *testing.T) {
	r := minimalRule("r1")
	r.Then = []Action{{Rename: &RenameAction{To: "{{name"}}}
	require.Error(t, Validate(&r, nil))
}

func TestValidateDuplicateIDs(t *testing.T) {
	seen := map[string]bool{}
	r1 := minimalRule("dup")
	r2 := minimalRule("dup")
	require.NoError(t, Validate(&r1, seen))
	require.Error(t, Validate(&r2, seen))
}

func TestValidateSizeRangeInverted(t *testing.T) {
	min := uint64(100)
	max := uint64(10)
	r := minimalRule("r1")
	r.When.SizeKB = &SizeRange{Min: &min, Max: &max}
	require.Error(t, Validate(&r, nil))
}

func TestValidateInvalidRegex(t *testing.T) {
	r := minimalRule("r1")
	r.When.Filename = "(unclosed"
	require.Error(t, Validate(&r, nil))
}

func TestValidateSetRejectsDuplicateAcrossSet(t *testing.T) {
	rs := []Rule{minimalRule("a"), minimalRule("a")}
	require.Error(t, ValidateSet(rs))
}
