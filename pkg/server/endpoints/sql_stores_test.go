package endpoints

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/onepredict/lges-query-server/pkg/model"
)

func TestEndpointsOverSQLStores(t *testing.T) {
	t.Run("plc models", func(t *testing.T) {
		s, db := newMockTestServer(t)
		db.ExpectModelsOf(1,
			model.PLCModel{ID: 1, LineID: 1, EquipmentID: 1, Model: 3, Name: "default", Description: "factory default"},
			model.PLCModel{ID: 2, LineID: 1, EquipmentID: 1, Model: 5, Name: "long cell"},
		)

		w := serve(s, "GET", "/api/v1/data/dashboard/plc_models?equipment_id=1", nil)
		requireStatus(t, w, http.StatusOK)
		assert.JSONEq(t, `[
			{"equipment_id": 1, "model": 3, "name": "default", "description": "factory default"},
			{"equipment_id": 1, "model": 5, "name": "long cell", "description": ""}
		]`, w.Body.String())
	})

	t.Run("motor category", func(t *testing.T) {
		s, db := newMockTestServer(t)
		db.ExpectMotor("13-1", 1, 7, motorName("UpperLaminationRoller"), model.CategoryU3t)
		db.ExpectMotor("13-1", 1, 99, "", 0)

		w := serve(s, "GET", "/api/v1/setting-client/motor-equipment-category?equipment_id=1&motor_number=7", nil)
		requireStatus(t, w, http.StatusOK)
		assert.JSONEq(t, `"u3t"`, w.Body.String())

		w = serve(s, "GET", "/api/v1/setting-client/motor-equipment-category?equipment_id=1&motor_number=99", nil)
		requireStatus(t, w, http.StatusNotFound)
	})

	t.Run("detail init follows the reported model", func(t *testing.T) {
		s, db := newMockTestServer(t)
		// The motors of a part are looked up concurrently.
		db.Mock.MatchExpectationsInOrder(false)
		db.Mock.ExpectQuery(`SELECT \* FROM "equipment" WHERE id = \$1`).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "line_id", "name"}).AddRow(2, 1, "15-1"))
		db.ExpectCurrentModel(2, 4, "5.0")
		db.ExpectMotor("15-1", 2, 3, motorName("CenterElectrodeCuttingLinear"), model.CategoryV3)
		db.ExpectMotor("15-1", 2, 4, "", 0)

		w := serve(s, "GET", "/api/v1/data/detail/pc-init?equipment_id=2", nil)
		requireStatus(t, w, http.StatusOK)
		rows := decodeJSON[map[string]map[string]interface{}](t, w)
		assert.Len(t, rows, 1)
		assert.Equal(t, 5.0, rows["motor3"]["plc"])
	})

	t.Run("status pings every database", func(t *testing.T) {
		s, db := newMockTestServer(t)
		db.ExpectPing(10)

		w := serve(s, "GET", "/", nil)
		requireStatus(t, w, http.StatusOK)
		resp := decodeJSON[StatusResponse](t, w)
		assert.Len(t, resp.Databases, 5)
	})
}
