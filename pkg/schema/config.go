// Package schema defines the Go struct types for the box configuration
// file and provides strict YAML parsing.
package schema

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the customization metadata file a box may carry at
// its root. Boxes without one are plain file templates.
const ConfigFileName = "box.yml"

// Config is the top-level box configuration document.
type Config struct {
	Recipes *Recipes `yaml:"recipes,omitempty"`
	// Ignore lists literal paths removed from the unpacked box before
	// any merge or recipe logic runs.
	Ignore []string `yaml:"ignore,omitempty"`
	// Message is optional markdown shown after a successful unbox.
	Message string `yaml:"message,omitempty"`
}

// Recipes describes the variant decision tree of a box.
type Recipes struct {
	Prompts []Prompt   `yaml:"prompts,omitempty"`
	Specs   *Scope     `yaml:"specs,omitempty"`
	Common  []FileSpec `yaml:"common,omitempty"`
}

// Prompt is the question asked at one depth of the decision tree.
type Prompt struct {
	Message string `yaml:"message"`
}

// Scope is one node of the recipe decision tree: a branch mapping
// choice labels to nested scopes, or a leaf listing the files of one
// fully resolved variant. Exactly one form is populated after a
// successful decode; use IsLeaf to tell them apart.
type Scope struct {
	// Choices holds the branch children keyed by choice label; Order
	// preserves the label order of the source document so prompts list
	// options deterministically.
	Choices map[string]*Scope
	Order   []string

	// Files is the leaf payload, valid only when IsLeaf is set.
	Files  []FileSpec
	IsLeaf bool
}

// UnmarshalYAML decodes a scope from either a mapping (branch) or a
// sequence (leaf). Any other node shape is a decode error rather than
// something resolved at use sites.
func (s *Scope) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var files []FileSpec
		if err := node.Decode(&files); err != nil {
			return err
		}
		s.IsLeaf = true
		s.Files = files
		return nil

	case yaml.MappingNode:
		s.Choices = make(map[string]*Scope, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			var label string
			if err := keyNode.Decode(&label); err != nil {
				return err
			}
			if _, dup := s.Choices[label]; dup {
				return fmt.Errorf("line %d: duplicate recipe choice %q", keyNode.Line, label)
			}
			child := &Scope{}
			if err := valNode.Decode(child); err != nil {
				return err
			}
			s.Order = append(s.Order, label)
			s.Choices[label] = child
		}
		return nil

	default:
		return fmt.Errorf("line %d: recipe scope must be a mapping of choices or a list of files", node.Line)
	}
}

// FileSpec names one file belonging to a variant: either a plain
// destination-relative path, or a move of From to To.
type FileSpec struct {
	Path string // plain entry; empty when the spec is a move
	From string
	To   string
}

// IsMove reports whether the spec is a {from, to} rename.
func (f FileSpec) IsMove() bool { return f.From != "" }

// UnmarshalYAML decodes a file spec from either a scalar path or a
// {from, to} mapping.
func (f *FileSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&f.Path)

	case yaml.MappingNode:
		var mv struct {
			From string `yaml:"from"`
			To   string `yaml:"to"`
		}
		if err := node.Decode(&mv); err != nil {
			return err
		}
		if mv.From == "" || mv.To == "" {
			return fmt.Errorf("line %d: move spec needs both from and to", node.Line)
		}
		f.From, f.To = mv.From, mv.To
		return nil

	default:
		return fmt.Errorf("line %d: file spec must be a path or a {from, to} mapping", node.Line)
	}
}

// HasRecipe reports whether the config defines any variants to resolve.
// A config whose specs key is absent or an empty mapping defines none,
// and the whole recipe stage is skipped.
func (c *Config) HasRecipe() bool {
	if c == nil || c.Recipes == nil || c.Recipes.Specs == nil {
		return false
	}
	specs := c.Recipes.Specs
	return specs.IsLeaf || len(specs.Order) > 0
}

// LoadDir reads the box config from the root of dir. A box without a
// config file yields (nil, nil): that is a plain box, not an error.
func LoadDir(dir string) (*Config, error) {
	f, err := os.Open(filepath.Join(dir, ConfigFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open box config: %w", err)
	}
	defer f.Close()

	cfg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

// Load parses a box config from an io.Reader with strict unknown-field
// rejection (yaml.v3 KnownFields), then normalizes and validates every
// path it mentions.
func Load(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // reject unknown fields

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty config file is a plain box with metadata stripped.
			return &Config{}, nil
		}
		return nil, fmt.Errorf("decode box config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
