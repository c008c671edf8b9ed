package store

import (
	"time"

	"github.com/onepredict/lges-query-server/pkg/model"
)

// FeatureRow is one feature or trigger row keyed by column name
type FeatureRow = map[string]interface{}

// FeatureQuery selects feature rows of one motor under one PLC model.
// Start and End are exclusive bounds; a nil bound leaves that side open.
type FeatureQuery struct {
	Table       string
	Columns     []string
	EquipmentID int
	MotorNumber int
	PLC         int
	Start       *time.Time
	End         *time.Time
}

// FeatureStore abstracts the feature database
type FeatureStore interface {
	// LatestFeature returns the most recent row matching q, ignoring its bounds.
	// Returns ErrNotFound if the motor has no row.
	LatestFeature(q FeatureQuery) (FeatureRow, error)

	// FeatureRange returns the rows of q ordered by acq_time ascending.
	FeatureRange(q FeatureQuery) ([]FeatureRow, error)

	// FeatureAt returns the rows of a category table acquired exactly at
	// acqTime, under any PLC model.
	FeatureAt(category model.Category, equipmentID, motorNumber int, acqTime time.Time) ([]FeatureRow, error)

	// LatestTrigger returns the most recent trigger of a motor under plc.
	// Returns ErrNotFound if there is none.
	LatestTrigger(equipmentID, motorNumber, plc int) (*model.Trigger, error)

	// TriggerRange returns the triggers of a motor strictly between start
	// and end, most recent first.
	TriggerRange(equipmentID, motorNumber int, start, end time.Time) ([]model.Trigger, error)
}
