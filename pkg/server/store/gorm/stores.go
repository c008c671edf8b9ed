package gorm

import (
	"time"

	"github.com/onepredict/lges-query-server/pkg/db"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

// NewStores builds every store on its own database connection.
func NewStores(conns *db.Connections, now func() time.Time) *store.Stores {
	return &store.Stores{
		Services: NewServiceStore(conns.Service),
		Features: NewFeatureStore(conns.Feature),
		Metadata: NewMetadataStore(conns.Metadata),
		PLC:      NewPLCStore(conns.PLC),
		FDC:      NewFDCStore(conns.FDC, now),
		Health:   NewHealthStore(conns),
	}
}
