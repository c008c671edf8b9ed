package format

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const motorCodePrefix = "lges.motors."

// MotorCode converts a motor name such as
// "ESWA_Auto_A_LAM_13_1_LAM_ESC_CenterElectrodeCuttingLinear_SVM_Axis_X"
// into the front end code "lges.motors.centerElectrodeCuttingLinear".
func MotorCode(name string) string {
	fields := strings.Split(name, "_")
	if len(fields) < 4 {
		return motorCodePrefix + lowerFirst(name)
	}
	return motorCodePrefix + lowerFirst(fields[len(fields)-4])
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// displayOrder is the position of a motor on its part page.
var displayOrder = []struct {
	motor string
	num   int
}{
	{"UpperElectrodeCuttingLinear", 1},
	{"UpperElectrodeCutter", 2},
	{"LowerElectrodeSeparatorNipRoller02", 3},
	{"CenterElectrodeCuttingLinear", 1},
	{"CenterElectrodeCutter", 2},
	{"LowerElectrodeSeparatorNipRoller01", 3},
	{"UpperLaminationRoller", 1},
	{"LowerLaminationRoller", 2},
	{"AxisSealingUpper", 3},
	{"AxisSealingLower", 4},
	{"CellCuttingLinear", 4},
	{"CellCutter", 3},
	{"UncutCellConveyor", 2},
	{"CellConveyor", 1},
}

// DisplayNum returns the display position of a motor code, 0 when the
// motor has no fixed position. Entries match as substrings regardless of
// case and the last matching entry wins, so "uncutCellConveyor" takes the
// position of "CellConveyor".
func DisplayNum(code string) int {
	motor := strings.ToLower(code)
	num := 0
	for _, d := range displayOrder {
		if strings.Contains(motor, strings.ToLower(d.motor)) {
			num = d.num
		}
	}
	return num
}
