package rules

import (
	"fmt"
	"regexp"
	"time"

	"github.com/gobwas/glob"

	"github.com/filesort/filesort/internal/apperrors"
	"github.com/filesort/filesort/internal/template"
)

const dateLayout = "2006-01-02"

// Validate checks a single rule's structural invariants. It never
// touches the filesystem. seenIDs, when non-nil, is used to detect
// duplicate ids across a ruleset being validated as a batch; callers
// validating one rule in isolation may pass nil.
func Validate(r *Rule, seenIDs map[string]bool) error {
	if r.ID == "" {
		return apperrors.InvalidRule("", "id", "id must not be empty")
	}
	if seenIDs != nil {
		if seenIDs[r.ID] {
			return apperrors.DuplicateRuleID(r.ID)
		}
		seenIDs[r.ID] = true
	}
	if r.Name == "" {
		return apperrors.InvalidRule(r.ID, "name", "name must not be empty")
	}
	if r.Priority == 0 {
		r.Priority = 1
	}
	if len(r.Then) == 0 {
		return apperrors.InvalidRule(r.ID, "then", "at least one action is required")
	}
	for i, a := range r.Then {
		if err := validateAction(r.ID, i, a); err != nil {
			return err
		}
	}
	if err := validateConditions(r.ID, &r.When); err != nil {
		return err
	}
	return nil
}

func validateAction(ruleID string, index int, a Action) error {
	field := fmt.Sprintf("then[%d]", index)
	kinds := 0
	for _, set := range []bool{a.Move != nil, a.Copy != nil, a.Rename != nil, a.Delete != nil, a.Skip != nil, a.Execute != nil, a.Compress != nil} {
		if set {
			kinds++
		}
	}
	if kinds > 1 {
		return apperrors.InvalidRule(ruleID, field, "action must set exactly one of move/copy/rename/delete/skip/execute/compress")
	}
	switch {
	case a.Move != nil:
		if a.Move.To == "" {
			return apperrors.InvalidRule(ruleID, field+".move.to", "to must not be empty")
		}
	case a.Copy != nil:
		if a.Copy.To == "" {
			return apperrors.InvalidRule(ruleID, field+".copy.to", "to must not be empty")
		}
	case a.Rename != nil:
		if a.Rename.To == "" {
			return apperrors.InvalidRule(ruleID, field+".rename.to", "to must not be empty")
		}
		if err := template.ValidateSyntax(a.Rename.To); err != nil {
			return apperrors.InvalidRule(ruleID, field+".rename.to", err.Error())
		}
	case a.Delete != nil:
		// trash defaults to false, no further validation needed.
	case a.Skip != nil:
		// no fields.
	case a.Execute != nil:
		if a.Execute.Command == "" {
			return apperrors.InvalidRule(ruleID, field+".execute.command", "command must not be empty")
		}
		for _, arg := range a.Execute.Args {
			if err := template.ValidateSyntax(arg); err != nil {
				return apperrors.InvalidRule(ruleID, field+".execute.args", err.Error())
			}
		}
	case a.Compress != nil:
		if a.Compress.To == "" {
			return apperrors.InvalidRule(ruleID, field+".compress.to", "to must not be empty")
		}
	default:
		return apperrors.InvalidRule(ruleID, field, "action must set exactly one of move/copy/rename/delete/skip/execute/compress")
	}
	return nil
}

func validateConditions(ruleID string, c *Conditions) error {
	if c.Filename != "" {
		if _, err := regexp.Compile(c.Filename); err != nil {
			return apperrors.InvalidRule(ruleID, "when.filename", "invalid regex: "+err.Error())
		}
	}
	if c.Path != "" {
		if _, err := glob.Compile(c.Path, '/'); err != nil {
			return apperrors.InvalidRule(ruleID, "when.path", "invalid glob: "+err.Error())
		}
	}
	if c.SizeKB != nil && c.SizeKB.Min != nil && c.SizeKB.Max != nil {
		if *c.SizeKB.Min > *c.SizeKB.Max {
			return apperrors.InvalidRule(ruleID, "when.size_kb", "min must not exceed max")
		}
	}
	if err := validateDateRange(ruleID, "when.created_date", c.CreatedDate); err != nil {
		return err
	}
	if err := validateDateRange(ruleID, "when.modified_date", c.ModifiedDate); err != nil {
		return err
	}
	seenKeys := map[string]bool{}
	for _, m := range c.Metadata {
		if m.Key == "" {
			return apperrors.InvalidRule(ruleID, "when.metadata", "key must not be empty")
		}
		if seenKeys[m.Key] {
			return apperrors.InvalidRule(ruleID, "when.metadata", "duplicate metadata key "+m.Key)
		}
		seenKeys[m.Key] = true
	}
	return nil
}

func validateDateRange(ruleID, field string, dr *DateRange) error {
	if dr == nil {
		return nil
	}
	var from, to time.Time
	var err error
	if dr.From != "" {
		if from, err = time.Parse(dateLayout, dr.From); err != nil {
			return apperrors.InvalidRule(ruleID, field+".from", "invalid date: "+err.Error())
		}
	}
	if dr.To != "" {
		if to, err = time.Parse(dateLayout, dr.To); err != nil {
			return apperrors.InvalidRule(ruleID, field+".to", "invalid date: "+err.Error())
		}
	}
	if dr.From != "" && dr.To != "" && from.After(to) {
		return apperrors.InvalidRule(ruleID, field, "from must not be after to")
	}
	return nil
}

// ValidateSet validates every rule in a ruleset, enforcing the
// uniqueness-of-id invariant across the whole set. The first
// violation aborts validation, matching the atomic-load contract.
func ValidateSet(rs []Rule) error {
	seen := map[string]bool{}
	for i := range rs {
		if err := Validate(&rs[i], seen); err != nil {
			return err
		}
	}
	return nil
}
