package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadPipelineFile overlays the non-zero values found in the YAML file at path onto base.
// An empty path returns base unchanged.
func LoadPipelineFile(path string, base PipelineConfig) (PipelineConfig, error) {
	if path == "" {
		return base, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read pipeline config: %w", err)
	}

	var overlay PipelineConfig
	if err := yaml.Unmarshal(b, &overlay); err != nil {
		return base, fmt.Errorf("parse pipeline config: %w", err)
	}

	if overlay.PersonalRootLabel != "" {
		base.PersonalRootLabel = overlay.PersonalRootLabel
	}
	if overlay.CommitConcurrency > 0 {
		base.CommitConcurrency = overlay.CommitConcurrency
	}
	if overlay.PersonalVaultLabel != "" {
		base.PersonalVaultLabel = overlay.PersonalVaultLabel
	}
	if overlay.OrganizationVaultLabel != "" {
		base.OrganizationVaultLabel = overlay.OrganizationVaultLabel
	}
	return base, nil
}
