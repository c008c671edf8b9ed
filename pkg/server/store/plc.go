package store

import (
	"time"

	"github.com/onepredict/lges-query-server/pkg/model"
)

// PLCStore abstracts the PLC database
type PLCStore interface {
	// CurrentModel returns the model last reported through the
	// CellState_Model memory mapping of an equipment, or
	// model.DefaultPLCModel when nothing was reported.
	CurrentModel(equipmentID int) (int, error)

	// Models returns every PLC model.
	Models() ([]model.PLCModel, error)

	// ModelsOf returns the models of one equipment.
	ModelsOf(equipmentID int) ([]model.PLCModel, error)

	// Model returns the model with the given number.
	// Returns ErrNotFound if it doesn't exist.
	Model(number int) (*model.PLCModel, error)

	// ModelExists reports whether a model with the given number exists.
	ModelExists(number int) (bool, error)

	// MemoryMappings returns every memory mapping.
	MemoryMappings() ([]model.MemoryMapping, error)

	// EquipmentMappings returns the memory mappings of one equipment.
	EquipmentMappings(lineID, equipmentID int) ([]model.MemoryMapping, error)

	// InsertLog records a value read from a memory mapping.
	// Returns ErrAlreadyExists if the (timestamp, mm_id) pair exists.
	InsertLog(timestamp time.Time, mmID int, value string) error

	// CreateModel adds a PLC model.
	CreateModel(m *model.PLCModel) error

	// UpdateModel updates the name and description of a model of an equipment.
	UpdateModel(m *model.PLCModel) error

	// DeleteModel removes the model with the given number.
	DeleteModel(number int) error
}
