package gorm

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onepredict/lges-query-server/pkg/model"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

func TestFeatureStore_LatestFeature(t *testing.T) {
	q := store.FeatureQuery{
		Table:       model.TableUniformSpeedExternalFeature,
		Columns:     []string{"acq_time", "final_diagnosis"},
		EquipmentID: 1,
		MotorNumber: 3,
		PLC:         3,
	}

	t.Run("returns the newest row", func(t *testing.T) {
		db, mock := newMockDB(t)
		acq := time.Date(2023, 4, 12, 4, 51, 37, 0, time.UTC)
		mock.ExpectQuery(`SELECT "acq_time","final_diagnosis" FROM "uniform_speed_external_feature" WHERE .* ORDER BY acq_time desc LIMIT 1`).
			WithArgs(1, 3, 3).
			WillReturnRows(sqlmock.NewRows([]string{"acq_time", "final_diagnosis"}).AddRow(acq, 2))

		row, err := NewFeatureStore(db).LatestFeature(q)
		require.NoError(t, err)
		assert.Equal(t, acq, row["acq_time"])
		assert.EqualValues(t, 2, row["final_diagnosis"])
	})

	t.Run("reports a motor without rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM "uniform_speed_external_feature"`).
			WillReturnRows(sqlmock.NewRows([]string{"acq_time", "final_diagnosis"}))

		_, err := NewFeatureStore(db).LatestFeature(q)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestFeatureStore_FeatureRange(t *testing.T) {
	start := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	t.Run("applies both bounds", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM "variable_speed_phase3_feature" WHERE .*acq_time > \$4.*acq_time < \$5.*ORDER BY acq_time`).
			WithArgs(1, 1, 3, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"acq_time"}).AddRow(start.Add(time.Hour)).AddRow(start.Add(2 * time.Hour)))

		rows, err := NewFeatureStore(db).FeatureRange(store.FeatureQuery{
			Table:       model.TableVariableSpeedPhase3Feature,
			Columns:     []string{"acq_time"},
			EquipmentID: 1, MotorNumber: 1, PLC: 3,
			Start: &start, End: &end,
		})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("leaves an open start unbounded", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM "variable_speed_phase3_feature" WHERE .*acq_time < \$4.*ORDER BY acq_time`).
			WithArgs(1, 1, 3, end).
			WillReturnRows(sqlmock.NewRows([]string{"acq_time"}))

		rows, err := NewFeatureStore(db).FeatureRange(store.FeatureQuery{
			Table:       model.TableVariableSpeedPhase3Feature,
			Columns:     []string{"acq_time"},
			EquipmentID: 1, MotorNumber: 1, PLC: 3,
			End: &end,
		})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestFeatureStore_FeatureAt(t *testing.T) {
	db, mock := newMockDB(t)
	acq := time.Date(2023, 4, 12, 4, 51, 37, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "uniform_speed_tension_feature" WHERE acq_time = \$1`).
		WithArgs(acq, 1, 7).
		WillReturnRows(sqlmock.NewRows([]string{"acq_time", "plc"}).AddRow(acq, 3))

	rows, err := NewFeatureStore(db).FeatureAt(model.CategoryU3t, 1, 7, acq)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 3, rows[0]["plc"])
}

func TestFeatureStore_Triggers(t *testing.T) {
	acq := time.Date(2023, 4, 12, 4, 51, 37, 0, time.UTC)

	t.Run("latest trigger", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "trigger" WHERE .* ORDER BY acq_time desc LIMIT 1`).
			WithArgs(1, 3, 3).
			WillReturnRows(sqlmock.NewRows([]string{"equipment_id", "motor_number", "acq_time", "plc", "status", "plc_status", "supply_freq_by_data", "rms_u"}).
				AddRow(1, 3, acq, 3, 1, 2, 59.9, 1.25))

		trig, err := NewFeatureStore(db).LatestTrigger(1, 3, 3)
		require.NoError(t, err)
		assert.Equal(t, 1, trig.Status)
		assert.Equal(t, 1.25, trig.RMSU)
	})

	t.Run("missing trigger", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM "trigger"`).WillReturnRows(sqlmock.NewRows([]string{"acq_time"}))

		_, err := NewFeatureStore(db).LatestTrigger(1, 3, 3)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("trigger range", func(t *testing.T) {
		db, mock := newMockDB(t)
		start, end := acq.Add(-time.Hour), acq.Add(time.Hour)
		mock.ExpectQuery(`FROM "trigger" WHERE .*acq_time > \$1 AND acq_time < \$2.* ORDER BY acq_time desc`).
			WithArgs(start, end, 1, 3).
			WillReturnRows(sqlmock.NewRows([]string{"acq_time", "rms_u"}).AddRow(acq, 1.5))

		rows, err := NewFeatureStore(db).TriggerRange(1, 3, start, end)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 1.5, rows[0].RMSU)
	})
}
