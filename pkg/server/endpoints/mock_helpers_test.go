package endpoints

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/onepredict/lges-query-server/pkg/db"
	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server"
	gormstore "github.com/onepredict/lges-query-server/pkg/server/store/gorm"
)

// MockDB holds the sqlmock behind every database of a mock test server.
type MockDB struct {
	Mock sqlmock.Sqlmock
}

// newMockTestServer returns a server backed by the gorm stores, with all
// five databases served by one sqlmock connection.
func newMockTestServer(t *testing.T) (*server.Server, *MockDB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 sqlDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	conns := &db.Connections{
		Service:  gormDB,
		Feature:  gormDB,
		Metadata: gormDB,
		PLC:      gormDB,
		FDC:      gormDB,
	}
	s := newServer(gormstore.NewStores(conns, func() time.Time { return testNow }), newMemoryObjects())

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})
	return s, &MockDB{Mock: mock}
}

// ExpectPing expects n connectivity checks.
func (m *MockDB) ExpectPing(n int) {
	for i := 0; i < n; i++ {
		m.Mock.ExpectExec(`SELECT 1`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

// ExpectCurrentModel expects the CellState_Model lookup of an equipment.
// A zero mmID means the equipment has no such mapping.
func (m *MockDB) ExpectCurrentModel(equipmentID, mmID int, value string) {
	ids := sqlmock.NewRows([]string{"id"})
	if mmID != 0 {
		ids.AddRow(mmID)
	}
	m.Mock.ExpectQuery(`SELECT "id" FROM "memorymapping"`).
		WithArgs(gormstore.PLCLineID, equipmentID, model.CellStateModelName).
		WillReturnRows(ids)
	if mmID == 0 {
		return
	}
	m.Mock.ExpectQuery(`SELECT "value" FROM "log"`).
		WithArgs(mmID).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(value))
}

// ExpectModelsOf expects the PLC models of an equipment to be listed.
func (m *MockDB) ExpectModelsOf(equipmentID int, models ...model.PLCModel) {
	rows := sqlmock.NewRows([]string{"id", "line_id", "equipment_id", "model", "name", "description"})
	for _, pm := range models {
		rows.AddRow(pm.ID, pm.LineID, pm.EquipmentID, pm.Model, pm.Name, pm.Description)
	}
	m.Mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "model" WHERE line_id = $1 AND equipment_id = $2 ORDER BY model`)).
		WithArgs(gormstore.PLCLineID, equipmentID).
		WillReturnRows(rows)
}

// ExpectMotor expects a single motor lookup.
func (m *MockDB) ExpectMotor(equipmentName string, equipmentID, number int, name string, category model.Category) {
	rows := sqlmock.NewRows([]string{"line_id", "equipment_name", "equipment_id", "number", "name", "category"})
	if name != "" {
		rows.AddRow(1, equipmentName, equipmentID, number, name, category.String())
	}
	m.Mock.ExpectQuery(`JOIN motor m ON m.equipment_id = e.id WHERE m.equipment_id = \$1 AND m.number = \$2`).
		WithArgs(equipmentID, number).
		WillReturnRows(rows)
}
