package format

import (
	"fmt"

	"github.com/onepredict/lges-query-server/pkg/model"
)

func prefixed(prefix string, names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = prefix + n
	}
	return out
}

// DetailInitKeys returns the operating and health feature keys of the
// charts on a detail page.
func DetailInitKeys(category model.Category) (operating, health []string) {
	switch category {
	case model.CategoryU3e:
		return prefixed(operatingPrefix, "rollingLoad", "rollingLoadRatio", "SNR"),
			prefixed(healthPrefix, "motorStator", "motorBearing", "gearbox", "externalBearing", "coupling", "belt")
	case model.CategoryU3t:
		return prefixed(operatingPrefix, "rollingLoad", "rollingLoadRatio", "SNR"),
			prefixed(healthPrefix, "motorStator", "motorBearing", "gearbox", "externalBearing", "TensionBearing", "coupling", "belt")
	default:
		return prefixed(operatingPrefix, "avgLoad", "avgLoadRatio", "peakLoad", "peakLoadRatio", "cuttingInterval"),
			prefixed(healthPrefix, "correlation", "noise")
	}
}

// TrendInitKeys returns the selectable keys of the trend page.
func TrendInitKeys() (operating, health []string) {
	return prefixed(operatingPrefix,
			"avgLoad", "avgLoadRatio", "peakLoad", "peakLoadRatio", "cuttingInterval",
			"rollingLoad", "SNR", "rollingLoadRatio"),
		prefixed(healthPrefix,
			"motor_bearing_diagnosis", "external_bearing_diagnosis", "stator_diagnosis",
			"gear_shaft_diagnosis", "coupling_diagnosis", "belt_diagnosis",
			"correlation_diagnosis", "noise_diagnosis",
			"external_main_bearing_diagnosis", "external_tension_bearing_diagnosis")
}

// StatusLabel renders a trigger status code.
func StatusLabel(status interface{}) string {
	return "lges.dashboard.status" + fmt.Sprint(status)
}
