package rules

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(afero.NewMemMapFs(), "/rules.yml")
}

func TestStoreLoadMissingFileReturnsEmpty(t *testing.T) {
	s := newTestStore()
	rs, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestStoreAddAndFind(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Add(minimalRule("r1")))

	found, err := s.Find("r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", found.ID)
}

func TestStoreAddDuplicateRejected(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Add(minimalRule("r1")))
	err := s.Add(minimalRule("r1"))
	require.Error(t, err)
}

func TestStoreRemove(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Add(minimalRule("r1")))
	require.NoError(t, s.Remove("r1"))

	_, err := s.Find("r1")
	require.Error(t, err)
}

func TestStoreRemoveMissing(t *testing.T) {
	s := newTestStore()
	require.Error(t, s.Remove("missing"))
}

func TestStoreToggle(t *testing.T) {
	s := newTestStore()
	r := minimalRule("r1")
	r.Enabled = true
	require.NoError(t, s.Add(r))

	require.NoError(t, s.Toggle("r1"))
	found, err := s.Find("r1")
	require.NoError(t, err)
	assert.False(t, found.Enabled)
}

func TestLoadRejectsUnknownTopLevelKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/rules.yml", []byte(`rulez:
  - id: r1
    name: rule r1
    enabled: true
    then:
      - skip: {}
`), 0o644))
	s := NewStore(fs, "/rules.yml")
	_, err := s.Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownRuleField(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/rules.yml", []byte(`rules:
  - id: r1
    name: rule r1
    enabled: true
    whenn:
      extensions: [jpg]
    then:
      - skip: {}
`), 0o644))
	s := NewStore(fs, "/rules.yml")
	_, err := s.Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownBareSequenceField(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/rules.yml", []byte(`- id: r1
  name: rule r1
  enabled: true
  bogus_field: 1
  then:
    - skip: {}
`), 0o644))
	s := NewStore(fs, "/rules.yml")
	_, err := s.Load()
	require.Error(t, err)
}

func TestLoadAcceptsEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/rules.yml", []byte(""), 0o644))
	s := NewStore(fs, "/rules.yml")
	rs, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestStoreExport(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Add(minimalRule("r1")))
	require.NoError(t, s.Export("r1", "/export.yml"))

	exported, err := NewStore(s.FS, "").Load()
	_ = exported
	_ = err // export target is a standalone file, not the store path; existence checked below
	data, statErr := afero.ReadFile(s.FS, "/export.yml")
	require.NoError(t, statErr)
	assert.Contains(t, string(data), "r1")
}
