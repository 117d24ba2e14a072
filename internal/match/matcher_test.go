package match

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filesort/filesort/internal/facts"
	"github.com/filesort/filesort/internal/rules"
)

func buildFacts(t *testing.T, fs afero.Fs, path string, content []byte) *facts.Facts {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, content, 0o644))
	f, err := facts.Build(fs, path)
	require.NoError(t, err)
	return f
}

func TestMatchesEmptyConditionsIsCatchAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	f := buildFacts(t, fs, "/src/a.txt", []byte("hi"))
	r := &rules.Rule{When: rules.Conditions{}}
	assert.True(t, Matches(r, f))
}

func TestMatchesExtensions(t *testing.T) {
	fs := afero.NewMemMapFs()
	f := buildFacts(t, fs, "/src/a.jpg", []byte("hi"))
	r := &rules.Rule{When: rules.Conditions{Extensions: []string{"jpg", "png"}}}
	assert.True(t, Matches(r, f))

	other := buildFacts(t, fs, "/src/a.txt", []byte("hi"))
	assert.False(t, Matches(r, other))
}

func TestMatchesFilenameRegex(t *testing.T) {
	fs := afero.NewMemMapFs()
	f := buildFacts(t, fs, "/src/report-2024.csv", []byte("hi"))
	r := &rules.Rule{When: rules.Conditions{Filename: `^report-\d{4}\.csv$`}}
	assert.True(t, Matches(r, f))
}

func TestMatchesSizeKB(t *testing.T) {
	fs := afero.NewMemMapFs()
	f := buildFacts(t, fs, "/src/big.bin", make([]byte, 2000*1024))
	min := uint64(1000)
	r := &rules.Rule{When: rules.Conditions{SizeKB: &rules.SizeRange{Min: &min}}}
	assert.True(t, Matches(r, f))

	small := buildFacts(t, fs, "/src/small.bin", make([]byte, 10*1024))
	assert.False(t, Matches(r, small))
}

func TestMatchesOrLogicMixedPredicates(t *testing.T) {
	fs := afero.NewMemMapFs()
	min := uint64(1000)
	r := &rules.Rule{When: rules.Conditions{
		Any:        true,
		Extensions: []string{"pdf"},
		SizeKB:     &rules.SizeRange{Min: &min},
	}}

	pdf := buildFacts(t, fs, "/src/a.pdf", []byte("x"))
	assert.True(t, Matches(r, pdf))

	big := buildFacts(t, fs, "/src/big.bin", make([]byte, 2000*1024))
	assert.True(t, Matches(r, big))

	other := buildFacts(t, fs, "/src/other.bin", []byte("x"))
	assert.False(t, Matches(r, other))
}

func TestMatchesIsSymlink(t *testing.T) {
	fs := afero.NewMemMapFs()
	f := buildFacts(t, fs, "/src/a.txt", []byte("x"))
	want := true
	r := &rules.Rule{When: rules.Conditions{IsSymlink: &want}}
	assert.False(t, Matches(r, f))
}

func TestMatchesMimePrefix(t *testing.T) {
	fs := afero.NewMemMapFs()
	f := buildFacts(t, fs, "/src/a.jpg", []byte("x"))
	r := &rules.Rule{When: rules.Conditions{MimeType: "image/*"}}
	assert.True(t, Matches(r, f))
}

func TestMatchesModifiedDateRange(t *testing.T) {
	fs := afero.NewMemMapFs()
	f := buildFacts(t, fs, "/src/a.txt", []byte("x"))
	from := f.Modified.Add(-24 * time.Hour).Format("2006-01-02")
	r := &rules.Rule{When: rules.Conditions{ModifiedDate: &rules.DateRange{From: from}}}
	assert.True(t, Matches(r, f))
}

func TestMatchIsPure(t *testing.T) {
	fs := afero.NewMemMapFs()
	f := buildFacts(t, fs, "/src/a.jpg", []byte("x"))
	r := &rules.Rule{When: rules.Conditions{Extensions: []string{"jpg"}}}
	first := Matches(r, f)
	second := Matches(r, f)
	assert.Equal(t, first, second)
}
