// Package apperrors defines the structured error taxonomy used across
// filesort's core packages: config/rule loading, validation, matching,
// templating, action execution and sorting.
package apperrors

import "fmt"

// Code identifies the broad category of a filesort error.
type Code string

const (
	CodeConfig            Code = "config_error"
	CodeRuleLoad          Code = "rule_load_error"
	CodeInvalidRule       Code = "invalid_rule"
	CodeDuplicateRuleID   Code = "duplicate_rule_id"
	CodeRuleNotFound      Code = "rule_not_found"
	CodeTemplate          Code = "template_error"
	CodeActionIoFailed    Code = "action_io_failed"
	CodeActionCollision   Code = "action_collision"
	CodeActionTrash       Code = "action_trash_unavailable"
	CodeActionExecFailed  Code = "action_execute_failed"
	CodeSortBadSource     Code = "sort_bad_source"
	CodeSortCancelled     Code = "sort_cancelled"
)

// Error is the common shape for every filesort error: a code, a
// human-readable message, optional structured details and an optional
// wrapped cause.
type Error struct {
	Code    Code
	Message string
	Details map[string]string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is lets errors.Is match on Code alone, so callers can test
// errors.Is(err, apperrors.RuleNotFound("")) without caring about id.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newErr(code Code, message string, wrapped error, details map[string]string) *Error {
	return &Error{Code: code, Message: message, Wrapped: wrapped, Details: details}
}

// ConfigErr wraps a configuration discovery/parse failure.
func ConfigErr(message string, wrapped error) *Error {
	return newErr(CodeConfig, message, wrapped, nil)
}

// RuleLoadErr wraps a YAML parse/schema failure while loading a ruleset.
func RuleLoadErr(message string, wrapped error) *Error {
	return newErr(CodeRuleLoad, message, wrapped, nil)
}

// InvalidRule reports a validation failure against a specific rule field.
func InvalidRule(id, field, reason string) *Error {
	return newErr(CodeInvalidRule, reason, nil, map[string]string{"id": id, "field": field})
}

// DuplicateRuleID reports an add/import collision on rule id.
func DuplicateRuleID(id string) *Error {
	return newErr(CodeDuplicateRuleID, fmt.Sprintf("rule id %q already exists", id), nil, map[string]string{"id": id})
}

// RuleNotFound reports a remove/toggle/export on a missing rule id.
func RuleNotFound(id string) *Error {
	return newErr(CodeRuleNotFound, fmt.Sprintf("rule id %q not found", id), nil, map[string]string{"id": id})
}

// TemplateErr reports a malformed placeholder or unknown filter.
func TemplateErr(template, reason string) *Error {
	return newErr(CodeTemplate, reason, nil, map[string]string{"template": template})
}

// ActionIoFailed wraps a filesystem failure during action execution.
func ActionIoFailed(message string, wrapped error) *Error {
	return newErr(CodeActionIoFailed, message, wrapped, nil)
}

// ActionCollision reports exhaustion of the collision-suffix search.
func ActionCollision(path string) *Error {
	return newErr(CodeActionCollision, fmt.Sprintf("could not find a free name for %q after 1000 attempts", path), nil, map[string]string{"path": path})
}

// ActionTrashUnavailable reports a failed trash delegation with no
// silent fallback to permanent delete.
func ActionTrashUnavailable(message string, wrapped error) *Error {
	return newErr(CodeActionTrash, message, wrapped, nil)
}

// ActionExecuteFailed reports a non-zero exit status from an Execute action.
func ActionExecuteFailed(exitCode int) *Error {
	return newErr(CodeActionExecFailed, fmt.Sprintf("command exited with status %d", exitCode), nil, map[string]string{"exit_code": fmt.Sprintf("%d", exitCode)})
}

// SortBadSource reports an invalid source directory.
func SortBadSource(path string, wrapped error) *Error {
	return newErr(CodeSortBadSource, fmt.Sprintf("source %q is not a usable directory", path), wrapped, map[string]string{"path": path})
}

// SortCancelled marks a run that was cooperatively cancelled mid-flight.
func SortCancelled() *Error {
	return newErr(CodeSortCancelled, "sort run was cancelled", nil, nil)
}
