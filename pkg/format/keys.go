package format

import (
	"sort"
	"time"
)

// Row is one database row keyed by column name.
type Row = map[string]interface{}

const (
	operatingPrefix = "lges.feature.operating."
	healthPrefix    = "lges.feature.health."
)

var responseKeys = map[string]string{
	"avg_load":           operatingPrefix + "avgLoad",
	"avg_load_ratio":     operatingPrefix + "avgLoadRatio",
	"peak_load":          operatingPrefix + "peakLoad",
	"peak_load_ratio":    operatingPrefix + "peakLoadRatio",
	"cutting_interval":   operatingPrefix + "cuttingInterval",
	"rolling_load":       operatingPrefix + "rollingLoad",
	"rolling_load_ratio": operatingPrefix + "rollingLoadRatio",
	"signal_noise_ratio": operatingPrefix + "SNR",

	"current_corr_pvm_median":         healthPrefix + "correlation",
	"current_noise_rms_pvm_median":    healthPrefix + "noise",
	"final_diagnosis":                 healthPrefix + "final_diagnosis",
	"current_corr_pvm_diagnosis":      healthPrefix + "correlation_diagnosis",
	"current_noise_rms_pvm_diagnosis": healthPrefix + "noise_diagnosis",
	"current_corr_pvm_lower_warning":  healthPrefix + "corr_lower_warning",
	"current_corr_pvm_lower_caution":  healthPrefix + "corr_lower_caution",
	"current_noise_rms_upper_warning": healthPrefix + "noise_upper_warning",
	"current_noise_rms_upper_caution": healthPrefix + "noise_upper_caution",
	"current_noise_rms_lower_warning": healthPrefix + "noise_lower_warning",
	"current_noise_rms_lower_caution": healthPrefix + "noise_lower_caution",

	"winding_supply_freq_amp_unbalance_ratio_median": healthPrefix + "motorStator",
	"motor_bpfi_1x_median":                           healthPrefix + "motorBearing",
	"gearbox_rotation_freq_amp_median":               healthPrefix + "gearbox",
	"external_bpfo_1x_median":                        healthPrefix + "externalBearing",
	"belt_kurtosis_max_median":                       healthPrefix + "belt",
	"coupling_supply_freq_amp_median":                healthPrefix + "coupling",
	"tension_bpfo_1x_median":                         healthPrefix + "externalTensionBearing",

	"stator_diagnosis":                   healthPrefix + "stator_diagnosis",
	"motor_bearing_diagnosis":            healthPrefix + "motor_bearing_diagnosis",
	"gear_shaft_diagnosis":               healthPrefix + "gear_shaft_diagnosis",
	"external_bearing_diagnosis":         healthPrefix + "external_bearing_diagnosis",
	"external_main_bearing_diagnosis":    healthPrefix + "external_main_bearing_diagnosis",
	"external_tension_bearing_diagnosis": healthPrefix + "external_tension_bearing_diagnosis",
	"coupling_diagnosis":                 healthPrefix + "coupling_diagnosis",
	"belt_diagnosis":                     healthPrefix + "belt_diagnosis",

	"stator_feature_warning":           healthPrefix + "stator_warning",
	"stator_feature_caution":           healthPrefix + "stator_caution",
	"motor_bearing_feature_warning":    healthPrefix + "motor_bearing_warning",
	"motor_bearing_feature_caution":    healthPrefix + "motor_bearing_caution",
	"gear_shaft_feature_warning":       healthPrefix + "gear_shaft_warning",
	"gear_shaft_feature_caution":       healthPrefix + "gear_shaft_caution",
	"external_bearing_feature_warning": healthPrefix + "external_bearing_warning",
	"external_bearing_feature_caution": healthPrefix + "external_bearing_caution",
	"coupling_feature_warning":         healthPrefix + "coupling_warning",
	"coupling_feature_caution":         healthPrefix + "coupling_caution",
	"belt_feature_warning":             healthPrefix + "belt_warning",
	"belt_feature_caution":             healthPrefix + "belt_caution",
	"tension_bearing_feature_warning":  healthPrefix + "tension_bearing_warning",
	"tension_bearing_feature_caution":  healthPrefix + "tension_bearing_caution",
}

// ResponseKey returns the front end key of a column, or the column itself.
func ResponseKey(column string) string {
	if key, ok := responseKeys[column]; ok {
		return key
	}
	return column
}

// RenameKeys returns a copy of row with every column renamed by ResponseKey.
func RenameKeys(row map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(row))
	for k, v := range row {
		out[ResponseKey(k)] = v
	}
	return out
}

// ChangeKeyName moves the value under from to the key to.
func ChangeKeyName(row map[string]interface{}, from, to string) error {
	v, ok := row[from]
	if !ok {
		return &KeyError{Key: from}
	}
	delete(row, from)
	row[to] = v
	return nil
}

// ExtractKeys returns the entries of row named in keys.
func ExtractKeys(row map[string]interface{}, keys []string) (map[string]interface{}, error) {
	if len(keys) == 0 {
		return nil, ErrEmptyKeyList
	}
	out := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		if v, ok := row[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// DeleteKeys removes keys from row and returns it.
func DeleteKeys(row map[string]interface{}, keys ...string) map[string]interface{} {
	for _, k := range keys {
		delete(row, k)
	}
	return row
}

// MergeRows collects the values of every column into a list, in row
// order. Times under acq_time are rendered with UnixMillis.
func MergeRows(rows []map[string]interface{}) map[string][]interface{} {
	merged := make(map[string][]interface{})
	for _, row := range rows {
		for k, v := range row {
			if k == "acq_time" {
				v = UnixValue(v)
			}
			merged[k] = append(merged[k], v)
		}
	}
	return merged
}

// UnixValue renders time values with UnixMillis and returns others unchanged.
func UnixValue(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return UnixMillis(t)
	case *time.Time:
		if t == nil {
			return nil
		}
		return UnixMillis(*t)
	}
	return v
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
