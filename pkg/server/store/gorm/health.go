package gorm

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/onepredict/lges-query-server/pkg/db"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

// Ensure HealthStore implements store.HealthStore
var _ store.HealthStore = (*HealthStore)(nil)

// HealthStore provides health check operations using GORM
type HealthStore struct {
	conns *db.Connections
}

// NewHealthStore creates a new HealthStore
func NewHealthStore(conns *db.Connections) *HealthStore {
	return &HealthStore{conns: conns}
}

func ping(database *gorm.DB) error {
	if database == nil {
		return fmt.Errorf("not connected")
	}
	return database.Exec("SELECT 1").Error
}

// CheckConnectivity verifies database connectivity
func (s *HealthStore) CheckConnectivity() error {
	for _, name := range db.Names {
		if err := ping(s.conns.ByName(name)); err != nil {
			return fmt.Errorf("%s database: %w", name, err)
		}
	}
	return nil
}

// Databases reports the reachability of each database by name.
func (s *HealthStore) Databases() map[string]bool {
	status := make(map[string]bool, len(db.Names))
	for _, name := range db.Names {
		status[name] = ping(s.conns.ByName(name)) == nil
	}
	return status
}
