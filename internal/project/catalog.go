package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/ContainerPlan/internal/model"
)

// CatalogFormat is the on-disk encoding of a catalog file.
type CatalogFormat string

const (
	FormatYAML CatalogFormat = "yaml"
	FormatJSON CatalogFormat = "json"
)

// DetectCatalogFormat picks the encoding from the file extension.
func DetectCatalogFormat(path string) (CatalogFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported catalog file type %q (use .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// LoadCatalog reads a catalog file. An empty path returns the built-in
// catalog. Keys missing from the file keep their built-in values; a table
// present in the file replaces the built-in table entirely. The result is
// validated before it is returned.
func LoadCatalog(path string) (model.Catalog, error) {
	cat := model.DefaultCatalog()
	if strings.TrimSpace(path) == "" {
		return cat, nil
	}
	format, err := DetectCatalogFormat(path)
	if err != nil {
		return model.Catalog{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &cat)
	case FormatJSON:
		err = json.Unmarshal(data, &cat)
	}
	if err != nil {
		return model.Catalog{}, fmt.Errorf("failed to parse catalog %s: %w", filepath.Base(path), err)
	}
	if err := cat.Validate(); err != nil {
		return model.Catalog{}, fmt.Errorf("catalog %s: %w", filepath.Base(path), err)
	}
	return cat, nil
}

// SaveCatalog writes a catalog in the format implied by the file extension.
// It creates any missing parent directories automatically.
func SaveCatalog(path string, cat model.Catalog) error {
	format, err := DetectCatalogFormat(path)
	if err != nil {
		return err
	}
	var data []byte
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(cat)
	case FormatJSON:
		data, err = json.MarshalIndent(cat, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
