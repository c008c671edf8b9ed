// Package store provides storage abstractions for the query server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// Endpoint tests use testify mocks of these interfaces.
//
// # Available Stores
//
//   - ServiceStore: lines, equipment, motors and per-PLC parameters
//   - FeatureStore: diagnosis features and triggers
//   - MetadataStore: raw waveform metadata
//   - PLCStore: PLC models, memory mappings and logs
//   - FDCStore: the FDC broker configuration
//   - HealthStore: connectivity of every database
//
// # Usage
//
//	services := gorm.NewServiceStore(conns.Service)
//	m, err := services.Motor(1, 3)
//	if err != nil {
//	    if errors.Is(err, store.ErrNotFound) {
//	        // Handle not found
//	    }
//	}
package store
