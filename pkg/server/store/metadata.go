package store

import (
	"time"

	"github.com/onepredict/lges-query-server/pkg/model"
)

// MetadataKey identifies the raw waveforms of one motor phase. AcqTime is
// ignored when zero.
type MetadataKey struct {
	LineID      int
	EquipmentID int
	MotorNumber int
	Phase       string
	AcqTime     time.Time
}

// MetadataStore abstracts the metadata database
type MetadataStore interface {
	// Range returns the metadata of a motor strictly between start and
	// end, most recent first.
	Range(equipmentID, motorNumber int, start, end time.Time) ([]model.Metadata, error)

	// Find returns the metadata rows matching key.
	Find(key MetadataKey) ([]model.Metadata, error)

	// Insert adds a metadata row.
	// Returns ErrAlreadyExists if the row exists.
	Insert(m *model.Metadata) error

	// Delete removes the metadata rows matching key and returns how many
	// were removed.
	Delete(key MetadataKey) (int64, error)
}
