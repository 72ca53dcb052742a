// Package config handles configuration loading and validation for nbview.
package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/nbview/internal/core/styles"
)

// Editor feature names understood by the embedded code editor.
const (
	FeatureMenuPrevention     = "menu-prevention"
	FeatureSelectionClipboard = "selection-clipboard"
	FeatureSuggest            = "suggest"
	FeatureSnippets           = "snippets"
	FeatureTabCompletion      = "tab-completion"
)

// KnownEditorFeatures lists every accepted editor.features entry.
var KnownEditorFeatures = []string{
	FeatureMenuPrevention,
	FeatureSelectionClipboard,
	FeatureSuggest,
	FeatureSnippets,
	FeatureTabCompletion,
}

// Config holds the application configuration.
type Config struct {
	TUI      TUIConfig      `yaml:"tui"`
	Notebook NotebookConfig `yaml:"notebook"`
	Editor   EditorConfig   `yaml:"editor"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
	Mouse *bool  `yaml:"mouse"` // nil = enabled
}

// MouseEnabled reports whether mouse support is on.
func (t TUIConfig) MouseEnabled() bool {
	return t.Mouse == nil || *t.Mouse
}

// NotebookConfig holds list layout metrics and discovery settings.
type NotebookConfig struct {
	LineHeight          int    `yaml:"line_height"`          // rows per source line
	CodeChrome          int    `yaml:"code_chrome"`          // fixed rows around a code cell
	MarkdownPlaceholder int    `yaml:"markdown_placeholder"` // markdown row height before measurement
	HorizontalMargin    int    `yaml:"horizontal_margin"`    // columns reserved on resize
	DiscoverGlob        string `yaml:"discover_glob"`        // doublestar pattern used by `ls`
	Watch               bool   `yaml:"watch"`                // reload when the file changes on disk
}

// EditorConfig configures the embedded code editor.
type EditorConfig struct {
	Features    []string          `yaml:"features"`
	TabSize     int               `yaml:"tab_size"`
	LineNumbers bool              `yaml:"line_numbers"`
	Snippets    map[string]string `yaml:"snippets"` // trigger word -> expansion
}

// HasFeature reports whether name is enabled.
func (e EditorConfig) HasFeature(name string) bool {
	return slices.Contains(e.Features, name)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
		Notebook: NotebookConfig{
			LineHeight:          1,
			CodeChrome:          2,
			MarkdownPlaceholder: 4,
			HorizontalMargin:    2,
			DiscoverGlob:        "**/*.{ipynb,md}",
			Watch:               true,
		},
		Editor: EditorConfig{
			Features:    slices.Clone(KnownEditorFeatures),
			TabSize:     4,
			LineNumbers: true,
			Snippets: map[string]string{
				"def":  "def name():\n    pass",
				"for":  "for item in items:\n    pass",
				"main": "if __name__ == \"__main__\":\n    main()",
			},
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Notebook.LineHeight == 0 {
		c.Notebook.LineHeight = defaults.Notebook.LineHeight
	}
	if c.Notebook.MarkdownPlaceholder == 0 {
		c.Notebook.MarkdownPlaceholder = defaults.Notebook.MarkdownPlaceholder
	}
	if c.Notebook.DiscoverGlob == "" {
		c.Notebook.DiscoverGlob = defaults.Notebook.DiscoverGlob
	}
	if c.Editor.TabSize == 0 {
		c.Editor.TabSize = defaults.Editor.TabSize
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a built-in theme", c.TUI.Theme)
	}

	if c.Notebook.LineHeight < 1 {
		return fmt.Errorf("notebook.line_height must be at least 1")
	}

	if c.Notebook.CodeChrome < 0 {
		return fmt.Errorf("notebook.code_chrome cannot be negative")
	}

	if c.Notebook.MarkdownPlaceholder < 1 {
		return fmt.Errorf("notebook.markdown_placeholder must be at least 1")
	}

	if c.Notebook.HorizontalMargin < 0 {
		return fmt.Errorf("notebook.horizontal_margin cannot be negative")
	}

	if c.Editor.TabSize < 1 || c.Editor.TabSize > 16 {
		return fmt.Errorf("editor.tab_size must be between 1 and 16")
	}

	return nil
}
