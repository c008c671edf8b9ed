package format

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onepredict/lges-query-server/pkg/model"
)

func TestPartMotors(t *testing.T) {
	assert.Equal(t, []int{3, 4}, PartMotors("15-2", PartPositiveCutting))
	assert.Equal(t, []int{7, 8, 9, 10}, PartMotors("15-2", PartFinalCutting))
	assert.Equal(t, []int{4, 5, 6}, PartMotors("13-1", PartPositiveCutting))
	assert.Equal(t, []int{7, 8, 12, 13}, PartMotors("13-1", PartLamination))
	assert.Equal(t, []int{1, 2, 3}, PartMotors("nodash", PartNegativeCutting))

	motors := PartMotors("13-1", PartNegativeCutting)
	motors[0] = 99
	assert.Equal(t, []int{1, 2, 3}, PartMotors("13-1", PartNegativeCutting))
}

func TestPartLabel(t *testing.T) {
	assert.Equal(t, "lges.menu.finalCutting", PartLabel("13-1", 14))
	assert.Equal(t, "lges.menu.laminationRoll", PartLabel("15-1", 5))
	assert.Equal(t, "", PartLabel("15-1", 14))
}

func TestParsePart(t *testing.T) {
	p, err := ParsePart("lami")
	require.NoError(t, err)
	assert.Equal(t, PartLamination, p)

	_, err = ParsePart("xx")
	assert.ErrorIs(t, err, ErrArgument)
}

func TestMotorCode(t *testing.T) {
	name := "ESWA_Auto_A_LAM_13_1_LAM_ESC_CenterElectrodeCuttingLinear_SVM_Axis_X"
	assert.Equal(t, "lges.motors.centerElectrodeCuttingLinear", MotorCode(name))
	assert.Equal(t, "lges.motors.cellCutter", MotorCode("13-1_CellCutter_M10_Servo_U"))
}

func TestDisplayNum(t *testing.T) {
	tests := map[string]int{
		"lges.motors.upperLaminationRoller": 1,
		"lges.motors.axisSealingLower":      4,
		"lges.motors.cellCutter":            3,
		"lges.motors.uncutCellConveyor":     1,
		"lges.motors.cellConveyor":          1,
		"lges.motors.cellConveyor02":        1,
		"lges.motors.cellCuttingLinear":     4,
		"lges.motors.unknown":               0,
	}
	for code, want := range tests {
		assert.Equal(t, want, DisplayNum(code), code)
	}
}

func TestUnixMillis(t *testing.T) {
	assert.Equal(t, "1681234567000.0", UnixMillis(time.Unix(1681234567, 0)))
	assert.Equal(t, "1681234567123.5", UnixMillis(time.Unix(1681234567, 123500000)))
}

func TestParseTime(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	got, err := ParseTime("2023-04-12 09:00:00", seoul)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 4, 12, 0, 0, 0, 0, time.UTC), got.UTC())

	got, err = ParseTime("2023-04-12T09:00:00Z", seoul)
	require.NoError(t, err)
	assert.Equal(t, 9, got.UTC().Hour())

	got, err = ParseTime("2023-04-12", seoul)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Day())

	_, err = ParseTime("yesterday", seoul)
	assert.ErrorIs(t, err, ErrArgument)
}

func TestDeterminePeriod(t *testing.T) {
	now := time.Date(2023, 4, 12, 0, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)

	p := DeterminePeriod(&start, nil, now)
	require.NotNil(t, p.Start)
	assert.Equal(t, now.Add(-30*24*time.Hour), *p.Start)
	assert.Equal(t, now, p.End)

	end := now.Add(-time.Minute)
	p = DeterminePeriod(&start, &end, now)
	assert.Equal(t, start, *p.Start)
	assert.Equal(t, end, p.End)

	p = DeterminePeriod(nil, &end, now)
	assert.Nil(t, p.Start)
}

func TestRenameKeys(t *testing.T) {
	row := map[string]interface{}{
		"rolling_load":                 1.5,
		"signal_noise_ratio":           2.0,
		"tension_bpfo_1x_median":       0.3,
		"coupling_feature_caution":     0.1,
		"current_noise_rms_pvm_median": 0.2,
		"name":                         "lges.motors.cellCutter",
	}
	got := RenameKeys(row)
	assert.Equal(t, map[string]interface{}{
		"lges.feature.operating.rollingLoad":         1.5,
		"lges.feature.operating.SNR":                 2.0,
		"lges.feature.health.externalTensionBearing": 0.3,
		"lges.feature.health.coupling_caution":       0.1,
		"lges.feature.health.noise":                  0.2,
		"name":                                       "lges.motors.cellCutter",
	}, got)
	assert.Contains(t, row, "rolling_load", "input is left untouched")
}

func TestChangeKeyName(t *testing.T) {
	row := map[string]interface{}{"number": 3}
	require.NoError(t, ChangeKeyName(row, "number", "motor_number"))
	assert.Equal(t, map[string]interface{}{"motor_number": 3}, row)

	err := ChangeKeyName(row, "number", "motor_number")
	var keyErr *KeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, "number", keyErr.Key)
}

func TestExtractKeys(t *testing.T) {
	row := map[string]interface{}{"a": 1, "b": 2}
	got, err := ExtractKeys(row, []string{"a", "c"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": 1}, got)

	_, err = ExtractKeys(row, nil)
	assert.ErrorIs(t, err, ErrEmptyKeyList)
}

func TestMergeRows(t *testing.T) {
	t0 := time.Unix(1681234567, 0)
	merged := MergeRows([]map[string]interface{}{
		{"acq_time": t0, "rolling_load": 1.0},
		{"acq_time": t0.Add(time.Second), "rolling_load": 2.0},
	})
	assert.Equal(t, []interface{}{"1681234567000.0", "1681234568000.0"}, merged["acq_time"])
	assert.Equal(t, []interface{}{1.0, 2.0}, merged["rolling_load"])
}

func TestExtractThreshold(t *testing.T) {
	setting := map[string]interface{}{
		"current_corr_pvm_lower_warning":  0.8,
		"current_corr_pvm_lower_caution":  0.9,
		"current_noise_rms_upper_warning": 0.5,
		"current_noise_rms_upper_caution": 0.4,
		"current_noise_rms_lower_warning": 0.01,
		"current_noise_rms_lower_caution": 0.02,
		"rated_current":                   3.2,
	}
	got, err := ExtractThreshold(model.CategoryV3, setting)
	require.NoError(t, err)

	threshold := got["threshold"].(map[string]interface{})
	assert.Equal(t, []ThresholdLevel{
		{Title: "lges.common.lower.caution", Value: 0.9},
		{Title: "lges.common.lower.warning", Value: 0.8},
	}, threshold["lges.feature.health.correlation"])
	assert.Len(t, threshold["lges.feature.health.noise"], 4)

	got, err = ExtractThreshold(model.CategoryV1, setting)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ExtractThreshold(model.CategoryU3t, setting)
	var keyErr *KeyError
	assert.ErrorAs(t, err, &keyErr)
}

func TestExtractThresholdTension(t *testing.T) {
	setting := map[string]interface{}{}
	for _, f := range []string{"stator", "motor_bearing", "gear_shaft", "external_bearing", "coupling", "belt", "tension_bearing"} {
		setting[f+"_feature_warning"] = 0.2
		setting[f+"_feature_caution"] = 0.1
	}
	got, err := ExtractThreshold(model.CategoryU3t, setting)
	require.NoError(t, err)
	threshold := got["threshold"].(map[string]interface{})
	assert.Len(t, threshold, 7)
	assert.Equal(t, []ThresholdLevel{
		{Title: "lges.common.upper.caution", Value: 0.1},
		{Title: "lges.common.upper.warning", Value: 0.2},
	}, threshold["lges.feature.health.externalTensionBearing"])

	got, err = ExtractThreshold(model.CategoryU3e, setting)
	require.NoError(t, err)
	assert.Len(t, got["threshold"], 6)
}

func TestTemplateRoundTrip(t *testing.T) {
	in := Template{U: []float64{1, 2}, V: []float64{3, 4}, W: []float64{5, 6.5}}
	b, err := EncodeTemplate(in)
	require.NoError(t, err)
	assert.Len(t, b, 48)

	out, err := DecodeTemplate(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = DecodeTemplate(b[:47])
	assert.ErrorIs(t, err, ErrArgument)

	empty, err := DecodeTemplate(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.U)
}

func TestColumns(t *testing.T) {
	assert.Contains(t, DetailColumns(model.CategoryU3t), "tension_bpfo_1x_median")
	assert.NotContains(t, DetailColumns(model.CategoryU3t), "external_bearing_diagnosis")
	assert.Contains(t, DetailColumns(model.CategoryU3e), "external_bearing_diagnosis")
	assert.Equal(t, []string{"equipment_id", "acq_time", "motor_number", "plc", "final_diagnosis"},
		DashboardColumns(model.CategoryV3))

	_, ok := TrendColumns(TrendVariableDiagnosis, model.CategoryU3e)
	assert.False(t, ok)
	_, ok = TrendColumns(TrendUniformDiagnosis, model.CategoryV3)
	assert.False(t, ok)
	cols, ok := TrendColumns(TrendLoad, model.CategoryV3)
	assert.True(t, ok)
	assert.Contains(t, cols, "peak_load_ratio")

	assert.Equal(t, []string{"equipment_id", "motor_number", "plc", "stator_diagnosis"},
		ScalarColumns([]string{"equipment_id", "motor_number", "plc", "acq_time", "rolling_load", "stator_diagnosis"}))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NewHTTPError(http.StatusNotFound, "missing %d", 1)))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
	assert.Equal(t, "lges.dashboard.status2", StatusLabel(2))
}
