// Package yaml provides YAML-based upload target profiles.
package yaml

import (
	"fmt"
	"os"

	"github.com/ochairo/otaupload/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// DefaultProfileFile is read from the working directory when present
const DefaultProfileFile = "ota.yml"

// yamlTarget represents the raw YAML structure
type yamlTarget struct {
	Host             string  `yaml:"host"`
	Port             int     `yaml:"port"`
	FrameworkPackage string  `yaml:"framework_package"`
	Tool             string  `yaml:"tool"`
	Interpreter      *string `yaml:"interpreter"`
}

// TargetParser parses YAML upload target profiles
type TargetParser struct{}

// NewTargetParser creates a new YAML parser
func NewTargetParser() *TargetParser {
	return &TargetParser{}
}

// ParseFile parses a YAML profile file into an UploadTarget
func (p *TargetParser) ParseFile(filePath string) (entities.UploadTarget, error) {
	//nolint:gosec // G304: filePath is the profile path given on the command line
	data, err := os.ReadFile(filePath)
	if err != nil {
		return entities.UploadTarget{}, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into an UploadTarget, filling omitted keys with defaults
func (p *TargetParser) Parse(data []byte) (entities.UploadTarget, error) {
	var raw yamlTarget
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return entities.UploadTarget{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	target := entities.DefaultUploadTarget()
	if raw.Host != "" {
		target.Host = raw.Host
	}
	if raw.Port != 0 {
		target.Port = raw.Port
	}
	if raw.FrameworkPackage != "" {
		target.FrameworkPackage = raw.FrameworkPackage
	}
	if raw.Tool != "" {
		target.ToolPath = raw.Tool
	}
	if raw.Interpreter != nil {
		target.Interpreter = *raw.Interpreter
	}

	if err := ValidateTarget(target); err != nil {
		return entities.UploadTarget{}, err
	}

	return target, nil
}

// ValidateTarget checks that a target can be handed to the transfer tool
func ValidateTarget(target entities.UploadTarget) error {
	if target.Host == "" {
		return fmt.Errorf("target must have a host")
	}
	if target.Port < 1 || target.Port > 65535 {
		return fmt.Errorf("target port out of range: %d", target.Port)
	}
	if target.FrameworkPackage == "" {
		return fmt.Errorf("target must name a framework package")
	}
	if target.ToolPath == "" {
		return fmt.Errorf("target must name a tool")
	}
	return nil
}
