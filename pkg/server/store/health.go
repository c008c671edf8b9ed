package store

// HealthStore provides health check operations
type HealthStore interface {
	// CheckConnectivity verifies connectivity of every database and
	// returns the first failure.
	CheckConnectivity() error

	// Databases reports the reachability of each database by name.
	Databases() map[string]bool
}
