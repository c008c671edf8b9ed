package store

import "github.com/onepredict/lges-query-server/pkg/model"

// FDCStore abstracts the FDC database
type FDCStore interface {
	// Config returns the broker configuration.
	// Returns ErrNotFound if the row does not exist yet.
	Config() (*model.FDCConfig, error)

	// UpdateConfig overwrites the configuration row and stamps its update time.
	UpdateConfig(c *model.FDCConfig) error
}
