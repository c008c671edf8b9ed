package format

import (
	"strings"

	"github.com/onepredict/lges-query-server/pkg/model"
)

var keyColumns = []string{"equipment_id", "motor_number", "plc", "acq_time"}

func with(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

var (
	uniformDiagnosis = []string{
		"stator_diagnosis", "motor_bearing_diagnosis", "gear_shaft_diagnosis",
		"external_bearing_diagnosis", "coupling_diagnosis", "belt_diagnosis", "final_diagnosis",
	}
	tensionDiagnosis = []string{
		"stator_diagnosis", "motor_bearing_diagnosis", "gear_shaft_diagnosis",
		"external_main_bearing_diagnosis", "external_tension_bearing_diagnosis",
		"coupling_diagnosis", "belt_diagnosis", "final_diagnosis",
	}
	uniformFeatures = []string{
		"rolling_load", "rolling_load_ratio", "signal_noise_ratio",
		"winding_supply_freq_amp_unbalance_ratio_median", "motor_bpfi_1x_median",
		"gearbox_rotation_freq_amp_median", "external_bpfo_1x_median",
		"coupling_supply_freq_amp_median", "belt_kurtosis_max_median",
	}
)

// DashboardColumns returns the feature columns of the dashboard card.
func DashboardColumns(category model.Category) []string {
	base := []string{"equipment_id", "acq_time", "motor_number", "plc"}
	switch category {
	case model.CategoryU3e:
		return with(base, uniformDiagnosis...)
	case model.CategoryU3t:
		return with(base, tensionDiagnosis...)
	default:
		return with(base, "final_diagnosis")
	}
}

// DetailColumns returns the feature columns charted on a detail page.
func DetailColumns(category model.Category) []string {
	switch category {
	case model.CategoryU3e:
		return with(with(keyColumns, uniformFeatures...), uniformDiagnosis...)
	case model.CategoryU3t:
		return with(with(with(keyColumns, uniformFeatures...), "tension_bpfo_1x_median"), tensionDiagnosis...)
	default:
		return with(keyColumns,
			"avg_load", "avg_load_ratio", "peak_load", "peak_load_ratio", "cutting_interval",
			"current_corr_pvm_median", "current_noise_rms_pvm_median",
			"current_corr_pvm_diagnosis", "current_noise_rms_pvm_diagnosis", "final_diagnosis")
	}
}

// TrendKind is a chart of the trend page.
type TrendKind string

const (
	TrendLoad              TrendKind = "load"
	TrendOperating         TrendKind = "operating"
	TrendVariableDiagnosis TrendKind = "variable_diagnosis"
	TrendUniformDiagnosis  TrendKind = "uniform_diagnosis"
)

// TrendColumns returns the feature columns of a trend chart. ok is false
// when the chart does not apply to the category.
func TrendColumns(kind TrendKind, category model.Category) (columns []string, ok bool) {
	uniform := category.IsUniform()
	switch kind {
	case TrendLoad:
		if uniform {
			return []string{"acq_time", "rolling_load", "rolling_load_ratio"}, true
		}
		return []string{"acq_time", "avg_load", "avg_load_ratio", "peak_load", "peak_load_ratio"}, true
	case TrendOperating:
		if uniform {
			return []string{"acq_time", "signal_noise_ratio"}, true
		}
		return []string{"acq_time", "cutting_interval"}, true
	case TrendVariableDiagnosis:
		if uniform {
			return nil, false
		}
		return []string{"acq_time", "current_corr_pvm_median", "current_noise_rms_pvm_median"}, true
	case TrendUniformDiagnosis:
		switch category {
		case model.CategoryU3e:
			return with([]string{"acq_time"}, uniformDiagnosis...), true
		case model.CategoryU3t:
			return with([]string{"acq_time"}, tensionDiagnosis...), true
		}
	}
	return nil, false
}

// ParseTrendKind validates a trend chart name taken from a URL.
func ParseTrendKind(s string) (TrendKind, error) {
	switch k := TrendKind(s); k {
	case TrendLoad, TrendOperating, TrendVariableDiagnosis, TrendUniformDiagnosis:
		return k, nil
	}
	return "", ErrArgument
}

// TriggerColumns are read from the latest trigger of a motor.
var TriggerColumns = []string{"status", "plc_status", "supply_freq_by_data", "rms_u", "acq_time"}

// ScalarColumns keep a single value, taken from the last row, when
// detail rows are merged.
func ScalarColumns(columns []string) []string {
	var out []string
	for _, c := range columns {
		if c == "equipment_id" || c == "motor_number" || c == "plc" || strings.HasSuffix(c, "diagnosis") {
			out = append(out, c)
		}
	}
	return out
}
