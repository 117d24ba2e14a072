package rules

import (
	"bytes"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/filesort/filesort/internal/apperrors"
)

// Store loads, validates and persists a ruleset from a YAML file,
// mirroring the CRUD surface the CLI collaborator's subcommands need
// (add/remove/toggle/list/export).
type Store struct {
	FS   afero.Fs
	Path string
}

// NewStore builds a Store bound to a path on fs.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{FS: fs, Path: path}
}

// Load reads and validates the ruleset at Path. A missing file yields
// an empty ruleset, not an error, so a fresh install can call Load
// before ever calling Save. Both the `{rules: [...]}` mapping form and
// a bare top-level sequence are accepted.
func (s *Store) Load() ([]Rule, error) {
	data, err := afero.ReadFile(s.FS, s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.RuleLoadErr("read rules file", err)
	}

	rs, err := parseRulesFile(data)
	if err != nil {
		return nil, err
	}
	if err := ValidateSet(rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// parseRulesFile decodes with KnownFields(true) so a typo'd or stray
// key anywhere in the document fails to load instead of being
// silently dropped.
func parseRulesFile(data []byte) ([]Rule, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var wrapped RulesFile
	wrappedDec := yaml.NewDecoder(bytes.NewReader(data))
	wrappedDec.KnownFields(true)
	wrappedErr := wrappedDec.Decode(&wrapped)
	if wrappedErr == nil && wrapped.Rules != nil {
		return wrapped.Rules, nil
	}

	var bare []Rule
	bareDec := yaml.NewDecoder(bytes.NewReader(data))
	bareDec.KnownFields(true)
	if err := bareDec.Decode(&bare); err != nil {
		if wrappedErr != nil {
			return nil, apperrors.RuleLoadErr("parse rules YAML", wrappedErr)
		}
		return nil, apperrors.RuleLoadErr("parse rules YAML", err)
	}
	return bare, nil
}

// Save validates and writes the whole ruleset, overwriting the file's
// previous contents (rules are read and written whole, never
// partially edited in place). The write goes straight to Path; no
// temporary file or rename is used.
func (s *Store) Save(rs []Rule) error {
	if err := ValidateSet(rs); err != nil {
		return err
	}
	out, err := yaml.Marshal(RulesFile{Rules: rs})
	if err != nil {
		return apperrors.RuleLoadErr("marshal rules YAML", err)
	}
	if err := afero.WriteFile(s.FS, s.Path, out, 0o644); err != nil {
		return apperrors.RuleLoadErr("write rules file", err)
	}
	return nil
}

// Add appends a new rule, rejecting a duplicate id.
func (s *Store) Add(r Rule) error {
	rs, err := s.Load()
	if err != nil {
		return err
	}
	for _, existing := range rs {
		if existing.ID == r.ID {
			return apperrors.DuplicateRuleID(r.ID)
		}
	}
	rs = append(rs, r)
	return s.Save(rs)
}

// Remove deletes the rule with the given id.
func (s *Store) Remove(id string) error {
	rs, err := s.Load()
	if err != nil {
		return err
	}
	out := rs[:0]
	found := false
	for _, r := range rs {
		if r.ID == id {
			found = true
			continue
		}
		out = append(out, r)
	}
	if !found {
		return apperrors.RuleNotFound(id)
	}
	return s.Save(out)
}

// Toggle flips a rule's Enabled flag.
func (s *Store) Toggle(id string) error {
	rs, err := s.Load()
	if err != nil {
		return err
	}
	for i := range rs {
		if rs[i].ID == id {
			rs[i].Enabled = !rs[i].Enabled
			return s.Save(rs)
		}
	}
	return apperrors.RuleNotFound(id)
}

// Find returns the rule with the given id.
func (s *Store) Find(id string) (*Rule, error) {
	rs, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range rs {
		if rs[i].ID == id {
			return &rs[i], nil
		}
	}
	return nil, apperrors.RuleNotFound(id)
}

// Export writes a single rule to destPath as a standalone YAML
// document, for sharing or backup.
func (s *Store) Export(id, destPath string) error {
	r, err := s.Find(id)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(RulesFile{Rules: []Rule{*r}})
	if err != nil {
		return apperrors.RuleLoadErr("marshal rule", err)
	}
	return afero.WriteFile(s.FS, destPath, out, 0o644)
}

// List returns every rule in the ruleset, unsorted (evaluation order
// is the sorter's concern, not the store's).
func (s *Store) List() ([]Rule, error) {
	return s.Load()
}
