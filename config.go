package latex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// DefaultFormat is the placeholder template, {} is replaced with placeholder number
const DefaultFormat = "//{}//"

// Config describes which constructs are hidden from the external text transformation and which stay visible.
type Config struct {
	// Format is a placeholder template with exactly one {} slot.
	Format string `yaml:"format"`

	// ReferenceCommands are never masked, for example \label and \ref.
	ReferenceCommands []string `yaml:"reference_commands"`

	// TextCommands keep math regions partially open, so their content remains editable.
	TextCommands []string `yaml:"text_commands"`

	// MathDelimiters are opening delimiters of nodes treated as math regions.
	MathDelimiters []string `yaml:"math_delimiters"`

	// MathEnvironments are named environments treated as math regions, for example equation or pmatrix.
	MathEnvironments []string `yaml:"math_environments"`

	// Opaque environments and commands have their whole content masked. Commands never carrying prose, like \cite
	// or \includegraphics, belong here too. Arguments following \begin{name} of an opaque environment stay in place.
	Opaque []string `yaml:"opaque"`

	// Concurrency limits the number of documents masked at once by MarkAll, zero means no limit.
	Concurrency int `yaml:"concurrency"`
}

func DefaultConfig() Config {
	return Config{
		Format:            DefaultFormat,
		ReferenceCommands: []string{"label", "ref"},
		TextCommands:      []string{"text", "textsf", "textrm", "textnormal", "texttt", "mbox"},
		MathDelimiters:    []string{"$", "$$", "\\(", "\\["},
		MathEnvironments: []string{
			"math", "displaymath", "equation", "equation*", "align", "align*", "cases", "array",
			"matrix", "pmatrix", "bmatrix", "Bmatrix", "vmatrix", "Vmatrix",
		},
		Opaque: []string{
			// environments with literal code or drawings
			"verbatim", "verbatim*", "lstlisting", "tikzpicture", "comment",
			// commands without prose
			"verb", "verb*", "cite", "pageref", "url", "lstinputlisting", "inputencoding", "bibliography",
			"bibliographystyle", "setlength", "color", "pagecolor", "input", "includegraphics", "rule", "adjustbox",
		},
	}
}

// LoadConfig reads configuration from a YAML file, keys missing in the file keep their default values.
// If the file does not exist, default configuration is returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes configuration to a YAML file
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks configuration before any document is masked
func (c Config) Validate() error {
	_, err := c.compile()
	return err
}

// rules is a validated configuration in a form suitable for lookups during traversal
type rules struct {
	formatter *Formatter
	reference map[string]bool
	text      map[string]bool
	math      map[string]bool // math delimiters
	mathEnv   map[string]bool
	opaque    map[string]bool
}

func (c Config) compile() (*rules, error) {
	formatter, err := NewFormatter(c.Format)
	if err != nil {
		return nil, err
	}

	for _, delimiter := range c.MathDelimiters {
		switch delimiter {
		case "$", "$$", "\\(", "\\[":
		default:
			return nil, fmt.Errorf("math delimiter %q is not supported", delimiter)
		}
	}

	if c.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}

	return &rules{
		formatter: formatter,
		reference: set(c.ReferenceCommands),
		text:      set(c.TextCommands),
		math:      set(c.MathDelimiters),
		mathEnv:   set(c.MathEnvironments),
		opaque:    set(c.Opaque),
	}, nil
}

func set(items []string) map[string]bool {
	return lo.Associate(items, func(item string) (string, bool) {
		return item, true
	})
}
