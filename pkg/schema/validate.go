package schema

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// SpecError reports an invalid file spec with its location in the
// recipe tree.
type SpecError struct {
	Scope  string // slash-joined choice labels leading to the spec; "common" or "ignore" for the shared lists
	Field  string // "path", "from", "to" or "ignore"
	Value  string
	Reason string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("recipe %s: %s %q %s", e.Scope, e.Field, e.Value, e.Reason)
}

// normalize cleans every path the config mentions and rejects any that
// is absolute or escapes the destination root. Specs are rewritten in
// place to their cleaned, slash-separated form so downstream
// components never re-derive them.
func (c *Config) normalize() error {
	for i, p := range c.Ignore {
		cleaned, err := cleanRel(p)
		if err != nil {
			return &SpecError{Scope: "ignore", Field: "ignore", Value: p, Reason: err.Error()}
		}
		c.Ignore[i] = cleaned
	}
	if c.Recipes == nil {
		return nil
	}
	if err := normalizeSpecs(c.Recipes.Common, "common"); err != nil {
		return err
	}
	if c.Recipes.Specs != nil {
		return normalizeScope(c.Recipes.Specs, "specs")
	}
	return nil
}

func normalizeScope(s *Scope, at string) error {
	if s.IsLeaf {
		return normalizeSpecs(s.Files, at)
	}
	for _, label := range s.Order {
		if err := normalizeScope(s.Choices[label], at+"/"+label); err != nil {
			return err
		}
	}
	return nil
}

func normalizeSpecs(specs []FileSpec, at string) error {
	for i := range specs {
		f := &specs[i]
		if f.IsMove() {
			from, err := cleanRel(f.From)
			if err != nil {
				return &SpecError{Scope: at, Field: "from", Value: f.From, Reason: err.Error()}
			}
			to, err := cleanRel(f.To)
			if err != nil {
				return &SpecError{Scope: at, Field: "to", Value: f.To, Reason: err.Error()}
			}
			f.From, f.To = from, to
			continue
		}
		p, err := cleanRel(f.Path)
		if err != nil {
			return &SpecError{Scope: at, Field: "path", Value: f.Path, Reason: err.Error()}
		}
		f.Path = p
	}
	return nil
}

// cleanRel normalizes a destination-relative path to slash-separated
// clean form. Absolute paths and parent-directory escapes are
// rejected, never silently repaired.
func cleanRel(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("is empty")
	}
	slashed := filepath.ToSlash(p)
	if path.IsAbs(slashed) || filepath.IsAbs(p) {
		return "", fmt.Errorf("must be relative to the destination")
	}
	cleaned := path.Clean(slashed)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("escapes the destination")
	}
	return cleaned, nil
}
