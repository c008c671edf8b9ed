package format

import (
	"strings"

	"github.com/onepredict/lges-query-server/pkg/model"
)

// ThresholdLevel is one line drawn on a feature chart.
type ThresholdLevel struct {
	Title string      `json:"title"`
	Value interface{} `json:"value"`
}

type thresholdSpec struct {
	key    string
	levels [][2]string // title, column
}

func upper(column string) [][2]string {
	return [][2]string{
		{"lges.common.upper.caution", column + "_caution"},
		{"lges.common.upper.warning", column + "_warning"},
	}
}

var variableThresholds = []thresholdSpec{
	{healthPrefix + "correlation", [][2]string{
		{"lges.common.lower.caution", "current_corr_pvm_lower_caution"},
		{"lges.common.lower.warning", "current_corr_pvm_lower_warning"},
	}},
	{healthPrefix + "noise", [][2]string{
		{"lges.common.lower.caution", "current_noise_rms_lower_caution"},
		{"lges.common.lower.warning", "current_noise_rms_lower_warning"},
		{"lges.common.upper.caution", "current_noise_rms_upper_caution"},
		{"lges.common.upper.warning", "current_noise_rms_upper_warning"},
	}},
}

var externalThresholds = []thresholdSpec{
	{healthPrefix + "motorStator", upper("stator_feature")},
	{healthPrefix + "motorBearing", upper("motor_bearing_feature")},
	{healthPrefix + "gearbox", upper("gear_shaft_feature")},
	{healthPrefix + "externalBearing", upper("external_bearing_feature")},
	{healthPrefix + "coupling", upper("coupling_feature")},
	{healthPrefix + "belt", upper("belt_feature")},
}

var tensionThresholds = append(append([]thresholdSpec{}, externalThresholds...),
	thresholdSpec{healthPrefix + "externalTensionBearing", upper("tension_bearing_feature")})

// ExtractThreshold builds the {"threshold": {...}} block of a detail view
// from the settings of a motor. Motors of a category without chart
// thresholds yield nil.
func ExtractThreshold(category model.Category, setting map[string]interface{}) (map[string]interface{}, error) {
	var specs []thresholdSpec
	switch category {
	case model.CategoryV3:
		specs = variableThresholds
	case model.CategoryU3e:
		specs = externalThresholds
	case model.CategoryU3t:
		specs = tensionThresholds
	default:
		return nil, nil
	}

	values := make(map[string]interface{})
	for k, v := range setting {
		if v != nil && (strings.HasSuffix(k, "_warning") || strings.HasSuffix(k, "_caution")) {
			values[k] = v
		}
	}

	threshold := make(map[string]interface{}, len(specs))
	for _, spec := range specs {
		levels := make([]ThresholdLevel, 0, len(spec.levels))
		for _, l := range spec.levels {
			v, ok := values[l[1]]
			if !ok {
				return nil, &KeyError{Key: l[1]}
			}
			levels = append(levels, ThresholdLevel{Title: l[0], Value: v})
		}
		threshold[spec.key] = levels
	}
	return map[string]interface{}{"threshold": threshold}, nil
}
