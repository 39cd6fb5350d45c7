package config

import (
	"fmt"
	"slices"
)

// PagesConfig holds the paging and export knobs of the user and report pages.
type PagesConfig struct {
	UsersPerPage      int   `envconfig:"USERS_PER_PAGE" default:"15"`
	ReportPerPage     int   `envconfig:"REPORT_PER_PAGE" default:"6"`
	ReportPageSizes   []int `envconfig:"REPORT_PAGE_SIZES" default:"6,12,24,50" validate:"min=1,dive,min=1"`
	ExportMaxComments int   `envconfig:"EXPORT_MAX_COMMENTS" default:"5" validate:"min=0"`
	SearchDebounceMs  int   `envconfig:"SEARCH_DEBOUNCE_MS" default:"500" validate:"min=0"`
}

func LoadPages() (*PagesConfig, error) {
	var cfg PagesConfig
	if err := load(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *PagesConfig) validate() error {
	if c.UsersPerPage <= 0 {
		return fmt.Errorf("USERS_PER_PAGE must be positive, got %d", c.UsersPerPage)
	}
	if !slices.Contains(c.ReportPageSizes, c.ReportPerPage) {
		return fmt.Errorf("REPORT_PER_PAGE %d is not one of REPORT_PAGE_SIZES %v", c.ReportPerPage, c.ReportPageSizes)
	}
	return nil
}
