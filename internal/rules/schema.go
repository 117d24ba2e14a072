// Package rules defines filesort's rule data model — Rule, Conditions
// and the Action tagged union — plus structural validation and
// YAML-backed persistence (the Store).
package rules

// Rule pairs a when-clause (Conditions) with a then-sequence of
// Actions. Rules are compared for evaluation order by (-Priority, ID).
type Rule struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Enabled     bool       `yaml:"enabled"`
	Description string     `yaml:"description,omitempty"`
	Priority    int        `yaml:"priority"`
	When        Conditions `yaml:"when"`
	Then        []Action   `yaml:"then"`
}

// Conditions is a conjunction of predicates by default, or a
// disjunction when Any is true. Every field is optional; an absent
// predicate is vacuously true under AND and vacuously false under OR.
type Conditions struct {
	Any bool `yaml:"any,omitempty"`

	Filename     string          `yaml:"filename,omitempty"`
	Extensions   []string        `yaml:"extensions,omitempty"`
	Path         string          `yaml:"path,omitempty"`
	SizeKB       *SizeRange      `yaml:"size_kb,omitempty"`
	MimeType     string          `yaml:"mime_type,omitempty"`
	CreatedDate  *DateRange      `yaml:"created_date,omitempty"`
	ModifiedDate *DateRange      `yaml:"modified_date,omitempty"`
	IsSymlink    *bool           `yaml:"is_symlink,omitempty"`
	Metadata     []MetadataField `yaml:"metadata,omitempty"`
}

// SizeRange bounds a file's size in KiB; either bound may be nil.
type SizeRange struct {
	Min *uint64 `yaml:"min,omitempty"`
	Max *uint64 `yaml:"max,omitempty"`
}

// DateRange bounds a timestamp by ISO-8601 date (YYYY-MM-DD); either
// bound may be empty.
type DateRange struct {
	From string `yaml:"from,omitempty"`
	To   string `yaml:"to,omitempty"`
}

// MetadataField requires an EXIF key to exist, optionally matching a
// literal value or a regex.
type MetadataField struct {
	Key   string  `yaml:"key"`
	Value *string `yaml:"value,omitempty"`
}

// Action is an externally-tagged union: exactly one field must be set.
// YAML renders each variant as its own mapping key, e.g.:
//
//	then:
//	  - move: {to: "/dst"}
//	  - skip: {}
type Action struct {
	Move     *MoveAction     `yaml:"move,omitempty"`
	Copy     *CopyAction     `yaml:"copy,omitempty"`
	Rename   *RenameAction   `yaml:"rename,omitempty"`
	Delete   *DeleteAction   `yaml:"delete,omitempty"`
	Skip     *SkipAction     `yaml:"skip,omitempty"`
	Execute  *ExecuteAction  `yaml:"execute,omitempty"`
	Compress *CompressAction `yaml:"compress,omitempty"`
}

type MoveAction struct {
	To                string `yaml:"to"`
	PreserveStructure bool   `yaml:"preserve_structure,omitempty"`
}

type CopyAction struct {
	To                string `yaml:"to"`
	PreserveStructure bool   `yaml:"preserve_structure,omitempty"`
}

type RenameAction struct {
	To string `yaml:"to"`
}

type DeleteAction struct {
	Trash bool `yaml:"trash,omitempty"`
}

type SkipAction struct{}

type ExecuteAction struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
}

// CompressAction gzips the matched file into To, optionally preserving
// the source-relative directory structure. Supplements the tagged
// union beyond the base schema (see design notes on the compress
// action).
type CompressAction struct {
	To                string `yaml:"to"`
	PreserveStructure bool   `yaml:"preserve_structure,omitempty"`
}

// Kind names which variant of the union is populated. Returns "" for
// a zero-value Action (rejected by Validate).
func (a Action) Kind() string {
	switch {
	case a.Move != nil:
		return "move"
	case a.Copy != nil:
		return "copy"
	case a.Rename != nil:
		return "rename"
	case a.Delete != nil:
		return "delete"
	case a.Skip != nil:
		return "skip"
	case a.Execute != nil:
		return "execute"
	case a.Compress != nil:
		return "compress"
	default:
		return ""
	}
}

// RulesFile is the top-level YAML document shape: a mapping with a
// `rules` key. A bare top-level sequence is also accepted by the
// Store's loader.
type RulesFile struct {
	Rules []Rule `yaml:"rules"`
}
