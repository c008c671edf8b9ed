package model

//go:generate go run github.com/dmarkham/enumer -type Category -trimprefix Category -transform lower -json -yaml -sql -output category.gen.go

// Category classifies a motor by speed profile and bearing layout.
type Category int

const (
	// CategoryU3e is a uniform speed motor with one external bearing.
	CategoryU3e Category = iota
	// CategoryU3t is a uniform speed motor with an external and a tension bearing.
	CategoryU3t
	// CategoryV1 is a single phase variable speed motor.
	CategoryV1
	// CategoryV3 is a three phase variable speed motor.
	CategoryV3
)

// IsUniform reports whether the motor runs at a uniform speed.
func (c Category) IsUniform() bool {
	return c == CategoryU3e || c == CategoryU3t
}

// FeatureTable returns the feature table holding the diagnosis rows of
// motors in this category.
func (c Category) FeatureTable() string {
	switch c {
	case CategoryU3e:
		return TableUniformSpeedExternalFeature
	case CategoryU3t:
		return TableUniformSpeedTensionFeature
	case CategoryV1:
		return TableVariableSpeedPhase1Feature
	default:
		return TableVariableSpeedPhase3Feature
	}
}
