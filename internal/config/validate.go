package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// ValidateWithCue validates a YAML configuration file using a CUE schema file.
func ValidateWithCue(configFile, cueFile string) error {
	ctx := cuecontext.New()

	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML config: %w", err)
	}
	var configData map[string]interface{}
	if err := yaml.Unmarshal(yamlBytes, &configData); err != nil {
		return fmt.Errorf("cannot unmarshal YAML config: %w", err)
	}
	configVal := ctx.Encode(configData)

	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaBytes)
	if schemaVal.Err() != nil {
		return fmt.Errorf("cannot compile CUE schema: %w", schemaVal.Err())
	}

	unified := schemaVal.Unify(configVal)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
