package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/ContainerPlan/internal/model"
)

const backupVersion = "1.0.0"

// BackupData bundles the application config with the catalog in use so a
// planner setup can be moved between machines.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Catalog   *model.Catalog  `json:"catalog,omitempty"`
}

// ExportAllData writes config and, when non-nil, the catalog to a single JSON
// file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, catalog *model.Catalog) error {
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Catalog:   catalog,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// A bundled catalog is validated; the caller applies the result.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Catalog != nil {
		if err := backup.Catalog.Validate(); err != nil {
			return BackupData{}, fmt.Errorf("invalid backup catalog: %w", err)
		}
	}
	if backup.Config.RecentExports == nil {
		backup.Config.RecentExports = []string{}
	}
	return backup, nil
}
