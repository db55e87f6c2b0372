package model

// AppConfig holds application-wide preferences and defaults.
type AppConfig struct {
	// Layout defaults applied to new sessions
	DefaultContainerSize string `json:"default_container_size"`
	DefaultInsulation    string `json:"default_insulation"`
	CatalogPath          string `json:"catalog_path"` // Empty = built-in catalog

	// Logging
	LogLevel  string `json:"log_level"`  // debug, info, warn, error
	LogFormat string `json:"log_format"` // text or json

	// Quote preferences
	Currency      string   `json:"currency"`
	RecentExports []string `json:"recent_exports"`
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultCatalog().
func DefaultAppConfig() AppConfig {
	cat := DefaultCatalog()
	return AppConfig{
		DefaultContainerSize: cat.DefaultContainerSize,
		DefaultInsulation:    cat.DefaultInsulation,
		CatalogPath:          "",
		LogLevel:             "info",
		LogFormat:            "text",
		Currency:             "EUR",
		RecentExports:        []string{},
	}
}

// ApplyToCatalog overrides the catalog's default container size and
// insulation with the configured ones when they are set.
func (c AppConfig) ApplyToCatalog(cat *Catalog) {
	if c.DefaultContainerSize != "" {
		cat.DefaultContainerSize = c.DefaultContainerSize
	}
	if c.DefaultInsulation != "" {
		cat.DefaultInsulation = c.DefaultInsulation
	}
}

// AddRecentExport records path at the front of the recent exports list,
// keeping at most max entries and no duplicates.
func (c *AppConfig) AddRecentExport(path string, max int) {
	list := []string{path}
	for _, p := range c.RecentExports {
		if p != path {
			list = append(list, p)
		}
	}
	if max > 0 && len(list) > max {
		list = list[:max]
	}
	c.RecentExports = list
}
