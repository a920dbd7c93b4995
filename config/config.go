// Package config loads project-level settings from casegen.yaml.
// The file is optional; a missing file yields the defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the conventional config location, relative to the
// project root.
const DefaultFile = "casegen.yaml"

// Config holds the project settings the tool honors
type Config struct {
	// ExtraModifiers are project-specific modifier names that validation
	// accepts in any form alongside the built-in set.
	ExtraModifiers []string `yaml:"extra_modifiers"`

	// MinVersion is the lowest tool version allowed to process this
	// project, e.g. "v0.3.0". Empty means any.
	MinVersion string `yaml:"min_version"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{}
}

// Load reads and validates a config file. A missing file is not an
// error; the defaults apply.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates config file content
func Parse(data []byte) (*Config, error) {
	// Decode generically first so the schema sees the document shape,
	// unknown keys included.
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if doc == nil {
		return Default(), nil
	}

	validator, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return &cfg, nil
}

// CheckVersion reports whether the running tool satisfies MinVersion
func (c *Config) CheckVersion(current string) error {
	if c.MinVersion == "" {
		return nil
	}
	if semver.Compare(canonicalVersion(current), canonicalVersion(c.MinVersion)) < 0 {
		return fmt.Errorf("tool version %s is below the project minimum %s", current, c.MinVersion)
	}
	return nil
}

// canonicalVersion adds the "v" prefix golang.org/x/mod/semver requires.
// Config files may carry versions either way.
func canonicalVersion(s string) string {
	if !strings.HasPrefix(s, "v") {
		return "v" + s
	}
	return s
}

// schemaJSON constrains the config document. The semver format mirrors
// golang.org/x/mod: a "v" prefix is required.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "extra_modifiers": {
      "type": "array",
      "items": {
        "type": "string",
        "pattern": "^[A-Za-z_][A-Za-z0-9_]*$"
      }
    },
    "min_version": {
      "type": "string",
      "format": "semver"
    }
  }
}`

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	// Extend (not replace) the compiler's format validators
	if compiler.Formats == nil {
		compiler.Formats = make(map[string]func(interface{}) bool)
	}
	compiler.Formats["semver"] = func(v interface{}) bool {
		s, ok := v.(string)
		if !ok {
			return true // type validation happens separately
		}
		return semver.IsValid(canonicalVersion(s))
	}
	if err := compiler.AddResource("casegen-config.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("schema resource: %w", err)
	}
	schema, err := compiler.Compile("casegen-config.json")
	if err != nil {
		return nil, fmt.Errorf("schema compile: %w", err)
	}
	return schema, nil
}
