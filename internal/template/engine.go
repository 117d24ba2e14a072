// Package template expands the `{{ name }}` / `{{ name | filter:arg }}`
// placeholders used in Rename/Move/Copy/Execute destinations, against a
// fixed vocabulary of file-derived variables.
package template

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/filesort/filesort/internal/apperrors"
	"github.com/filesort/filesort/internal/facts"
)

// placeholderRe is compiled exactly once per process, per the
// placeholder grammar: `{{ name }}` or `{{ name | filter:arg }}` with
// tolerated whitespace inside the braces.
var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*(?:\|\s*([A-Za-z]+)(?::([^}]*))?)?\s*\}\}`)

// knownFilters is the finite set of filter names Expand recognizes;
// anything else is a TemplateError at expansion time.
var knownFilters = map[string]bool{
	"date":  true,
	"lower": true,
	"upper": true,
}

// ValidateSyntax checks that every placeholder in tmpl parses (braces
// balanced, filter name from the known set) without needing a Facts
// value. Used by rule validation so a malformed Rename/Execute
// template is rejected at load time, not at expansion time.
func ValidateSyntax(tmpl string) error {
	if strings.Count(tmpl, "{{") != strings.Count(tmpl, "}}") {
		return apperrors.TemplateErr(tmpl, "unbalanced placeholder braces")
	}
	matches := placeholderRe.FindAllStringSubmatch(tmpl, -1)
	for _, m := range matches {
		filter := m[2]
		if filter != "" && !knownFilters[filter] {
			return apperrors.TemplateErr(tmpl, "unknown filter: "+filter)
		}
	}
	return nil
}

// Expand performs a single pass over tmpl, substituting every
// recognized placeholder with a value derived from f. Unknown
// placeholders resolve to the empty string; unknown filters produce a
// TemplateError.
func Expand(tmpl string, f *facts.Facts) (string, error) {
	var b strings.Builder
	last := 0
	var firstErr error

	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(tmpl, -1) {
		start, end := loc[0], loc[1]
		b.WriteString(tmpl[last:start])
		last = end

		name := submatch(tmpl, loc, 2)
		filter := submatch(tmpl, loc, 4)
		arg := submatch(tmpl, loc, 6)

		value, isDate, dateVal := resolveVariable(name, f)
		if filter != "" {
			if !knownFilters[filter] {
				if firstErr == nil {
					firstErr = apperrors.TemplateErr(tmpl, "unknown filter: "+filter)
				}
				continue
			}
			var err error
			value, err = applyFilter(filter, arg, value, isDate, dateVal)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
		}
		b.WriteString(value)
	}
	b.WriteString(tmpl[last:])

	if firstErr != nil {
		return "", firstErr
	}
	return b.String(), nil
}

// submatch extracts submatch group idx (0-based group number * 2 into
// loc) from FindAllStringSubmatchIndex's flat index slice, returning
// "" if the group didn't participate.
func submatch(s string, loc []int, groupOffset int) string {
	if groupOffset+1 >= len(loc) {
		return ""
	}
	start, end := loc[groupOffset], loc[groupOffset+1]
	if start < 0 || end < 0 {
		return ""
	}
	return s[start:end]
}

func applyFilter(filter, arg, value string, isDate bool, dateVal string) (string, error) {
	switch filter {
	case "lower":
		return strings.ToLower(value), nil
	case "upper":
		return strings.ToUpper(value), nil
	case "date":
		if !isDate {
			return "", apperrors.TemplateErr(value, "date filter applied to a non-date variable")
		}
		return formatStrftime(arg, dateVal), nil
	default:
		return "", apperrors.TemplateErr(value, "unknown filter: "+filter)
	}
}

// formatStrftime reformats an RFC3339 dateVal using a small strftime
// subset (%Y %m %d %H %M %S). Unrecognized directives pass through
// unchanged.
func formatStrftime(layout, dateVal string) string {
	t, err := parseISODate(dateVal)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(layout); i++ {
		if layout[i] == '%' && i+1 < len(layout) {
			switch layout[i+1] {
			case 'Y':
				b.WriteString(strconv.Itoa(t.Year()))
			case 'm':
				b.WriteString(pad2(int(t.Month())))
			case 'd':
				b.WriteString(pad2(t.Day()))
			case 'H':
				b.WriteString(pad2(t.Hour()))
			case 'M':
				b.WriteString(pad2(t.Minute()))
			case 'S':
				b.WriteString(pad2(t.Second()))
			default:
				b.WriteByte(layout[i])
				b.WriteByte(layout[i+1])
			}
			i++
			continue
		}
		b.WriteByte(layout[i])
	}
	return b.String()
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
