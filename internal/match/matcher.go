package match

import (
	"strings"
	"time"

	"github.com/filesort/filesort/internal/facts"
	"github.com/filesort/filesort/internal/rules"
)

const dateLayout = "2006-01-02"

// predicate reports whether a Conditions field was present, and if
// so, whether it matched. Absent predicates are skipped by the
// combinator below.
type predicate func() (present, ok bool)

// Matches evaluates rule.When against f, short-circuiting per mode:
// under AND the first false predicate returns false; under OR the
// first true predicate returns true. An absent predicate never
// decides the outcome. A Conditions value with no predicates present
// matches everything under AND (the intentional catch-all) and
// nothing under OR.
func Matches(rule *rules.Rule, f *facts.Facts) bool {
	c := &rule.When
	preds := []predicate{
		func() (bool, bool) { return c.Filename != "", c.Filename != "" && matchFilename(c.Filename, f.Basename) },
		func() (bool, bool) { return len(c.Extensions) > 0, len(c.Extensions) > 0 && matchExtension(c.Extensions, f.Extension) },
		func() (bool, bool) { return c.Path != "", c.Path != "" && matchGlob(c.Path, f.Path) },
		func() (bool, bool) { return c.SizeKB != nil, c.SizeKB != nil && matchSizeKB(c.SizeKB, f.Size) },
		func() (bool, bool) { return c.MimeType != "", c.MimeType != "" && matchMime(c.MimeType, f.MimeType) },
		func() (bool, bool) { return c.CreatedDate != nil, c.CreatedDate != nil && matchDateRange(c.CreatedDate, f.Created) },
		func() (bool, bool) { return c.ModifiedDate != nil, c.ModifiedDate != nil && matchDateRange(c.ModifiedDate, f.Modified) },
		func() (bool, bool) { return c.IsSymlink != nil, c.IsSymlink != nil && *c.IsSymlink == f.IsSymlink },
		func() (bool, bool) { return len(c.Metadata) > 0, len(c.Metadata) > 0 && matchMetadata(c.Metadata, f) },
	}

	if c.Any {
		for _, p := range preds {
			if present, ok := p(); present && ok {
				return true
			}
		}
		return false
	}

	for _, p := range preds {
		if present, ok := p(); present && !ok {
			return false
		}
	}
	return true
}

func matchFilename(pattern, basename string) bool {
	re, ok := compiledRegex(pattern)
	return ok && re.MatchString(basename)
}

// matchExtension compares on string slices (no set allocation) per
// the hot-path contract; the rule side is small and validated once.
func matchExtension(exts []string, ext string) bool {
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func matchGlob(pattern, path string) bool {
	g, ok := compiledGlob(pattern)
	return ok && g.Match(path)
}

func matchSizeKB(r *rules.SizeRange, sizeBytes int64) bool {
	var minBytes, maxBytes int64
	maxBytes = 1<<62 - 1
	if r.Min != nil {
		minBytes = int64(*r.Min) * 1024
	}
	if r.Max != nil {
		maxBytes = int64(*r.Max) * 1024
	}
	return sizeBytes >= minBytes && sizeBytes <= maxBytes
}

func matchMime(pattern, mime string) bool {
	if strings.HasSuffix(pattern, "/*") {
		return strings.HasPrefix(mime, pattern[:len(pattern)-1])
	}
	return pattern == mime
}

func matchDateRange(r *rules.DateRange, t time.Time) bool {
	minT, maxT := dateBounds()
	if r.From != "" {
		if parsed, err := time.Parse(dateLayout, r.From); err == nil {
			minT = parsed
		}
	}
	if r.To != "" {
		if parsed, err := time.Parse(dateLayout, r.To); err == nil {
			maxT = parsed.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return !t.Before(minT) && !t.After(maxT)
}

// matchMetadata requires every listed field's key to exist in the
// file's EXIF map; when a value is given it must equal or
// regex-match the stored value.
func matchMetadata(fields []rules.MetadataField, f *facts.Facts) bool {
	m, ok := f.Exif()
	if !ok {
		return false
	}
	for _, field := range fields {
		got, exists := m[field.Key]
		if !exists {
			return false
		}
		if field.Value == nil {
			continue
		}
		got = strings.Trim(got, `"`)
		if got == *field.Value {
			continue
		}
		re, ok := compiledRegex(*field.Value)
		if !ok || !re.MatchString(got) {
			return false
		}
	}
	return true
}
