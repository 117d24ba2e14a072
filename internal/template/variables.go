package template

import (
	"strconv"
	"strings"
	"time"

	"github.com/filesort/filesort/internal/facts"
)

const isoLayout = time.RFC3339

func parseISODate(s string) (time.Time, error) {
	return time.Parse(isoLayout, s)
}

// resolveVariable looks up a placeholder name against the fixed
// vocabulary. isDate/dateVal are populated for the year/month/day
// family so the `date` filter can reformat the full underlying
// timestamp rather than just the requested component.
func resolveVariable(name string, f *facts.Facts) (value string, isDate bool, dateVal string) {
	switch name {
	case "filename":
		return f.Basename, false, ""
	case "name":
		return f.NameWithoutExtension(), false, ""
	case "extension", "ext":
		return f.Extension, false, ""
	case "size":
		return strconv.FormatInt(f.Size, 10), false, ""

	case "year", "month", "day":
		t := effectiveDate(f)
		return datePart(name, t), true, t.Format(isoLayout)

	case "created_year", "created_month", "created_day":
		t := f.Created
		return datePart(strings.TrimPrefix(name, "created_"), t), true, t.Format(isoLayout)

	case "modified_year", "modified_month", "modified_day":
		t := f.Modified
		return datePart(strings.TrimPrefix(name, "modified_"), t), true, t.Format(isoLayout)
	}

	if key, ok := strings.CutPrefix(name, "metadata."); ok {
		m, ok := f.Exif()
		if !ok {
			return "", false, ""
		}
		return strings.Trim(m[key], `"`), false, ""
	}

	return "", false, ""
}

// effectiveDate is the EXIF date if present and decodable, else the
// file's modified time.
func effectiveDate(f *facts.Facts) time.Time {
	if t, ok := f.ExifDate(); ok {
		return t
	}
	return f.Modified
}

func datePart(part string, t time.Time) string {
	switch part {
	case "year":
		return strconv.Itoa(t.Year())
	case "month":
		return pad2(int(t.Month()))
	case "day":
		return pad2(t.Day())
	default:
		return ""
	}
}
