package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/nbview/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including the discovery glob, editor feature names and the config file
// itself. The configPath argument specifies the config file location to
// validate (empty string skips the config file check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("tui.theme", c.TUI.Theme, themeExists),
		criterio.Run("notebook.discover_glob", c.Notebook.DiscoverGlob, validGlob),
		c.validateEditor(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.HasSnippetsWithoutFeature() {
		warnings = append(warnings, ValidationWarning{
			Category: "Editor",
			Item:     "snippets",
			Message:  "snippets are defined but the snippets feature is disabled",
		})
	}

	if c.Notebook.CodeChrome == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Notebook",
			Item:     "code_chrome",
			Message:  "code cells are rendered without a border",
		})
	}

	return warnings
}

// HasSnippetsWithoutFeature reports snippets that can never expand.
func (c *Config) HasSnippetsWithoutFeature() bool {
	return len(c.Editor.Snippets) > 0 && !c.Editor.HasFeature(FeatureSnippets)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func validGlob(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return nil
}

func (c *Config) validateEditor() error {
	var errs criterio.FieldErrorsBuilder

	seen := make(map[string]bool, len(c.Editor.Features))
	for i, name := range c.Editor.Features {
		field := fmt.Sprintf("editor.features[%d]", i)
		if !slices.Contains(KnownEditorFeatures, name) {
			errs = errs.Append(field, fmt.Errorf("unknown feature %q", name))
			continue
		}
		if seen[name] {
			errs = errs.Append(field, fmt.Errorf("duplicate feature %q", name))
		}
		seen[name] = true
	}

	for trigger, body := range c.Editor.Snippets {
		field := fmt.Sprintf("editor.snippets.%s", trigger)
		if strings.TrimSpace(trigger) == "" || strings.ContainsAny(trigger, " \t\n") {
			errs = errs.Append(field, fmt.Errorf("trigger must be a single word"))
		}
		if body == "" {
			errs = errs.Append(field, fmt.Errorf("expansion cannot be empty"))
		}
	}

	return errs.ToError()
}
