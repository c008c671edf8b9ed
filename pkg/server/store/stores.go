package store

// Stores bundles every store the endpoints read from
type Stores struct {
	Services ServiceStore
	Features FeatureStore
	Metadata MetadataStore
	PLC      PLCStore
	FDC      FDCStore
	Health   HealthStore
}
