package format

import (
	"fmt"
	"strings"
)

// Part is a detail page of an equipment.
type Part string

const (
	PartPositiveCutting Part = "pc"
	PartNegativeCutting Part = "nc"
	PartLamination      Part = "lami"
	PartFinalCutting    Part = "fc"
)

// Parts lists every part in display order.
var Parts = []Part{PartPositiveCutting, PartNegativeCutting, PartLamination, PartFinalCutting}

var partLabels = map[Part]string{
	PartPositiveCutting: "lges.menu.positiveCutting",
	PartNegativeCutting: "lges.menu.negativeCutting",
	PartLamination:      "lges.menu.laminationRoll",
	PartFinalCutting:    "lges.menu.finalCutting",
}

// Line 15 was built with fewer motors per part.
var line15Parts = map[Part][]int{
	PartPositiveCutting: {3, 4},
	PartNegativeCutting: {1, 2},
	PartLamination:      {5, 6},
	PartFinalCutting:    {7, 8, 9, 10},
}

var defaultParts = map[Part][]int{
	PartPositiveCutting: {4, 5, 6},
	PartNegativeCutting: {1, 2, 3},
	PartLamination:      {7, 8, 12, 13},
	PartFinalCutting:    {9, 10, 11, 14},
}

// ParsePart validates a part name taken from a URL.
func ParsePart(s string) (Part, error) {
	p := Part(s)
	if _, ok := partLabels[p]; !ok {
		return "", fmt.Errorf("%w: unknown part %q", ErrArgument, s)
	}
	return p, nil
}

// Label returns the translation key of the part.
func (p Part) Label() string {
	return partLabels[p]
}

func partMap(equipmentName string) map[Part][]int {
	line, _, _ := strings.Cut(equipmentName, "-")
	if line == "15" {
		return line15Parts
	}
	return defaultParts
}

// PartMotors returns the motor numbers shown on a part page of the
// named equipment.
func PartMotors(equipmentName string, p Part) []int {
	numbers := partMap(equipmentName)[p]
	out := make([]int, len(numbers))
	copy(out, numbers)
	return out
}

// PartOf returns the part a motor belongs to on the named equipment.
func PartOf(equipmentName string, motorNumber int) (Part, bool) {
	parts := partMap(equipmentName)
	for _, p := range Parts {
		for _, n := range parts[p] {
			if n == motorNumber {
				return p, true
			}
		}
	}
	return "", false
}

// PartLabel returns the part translation key of a motor, or "" when the
// motor is on no part page.
func PartLabel(equipmentName string, motorNumber int) string {
	p, ok := PartOf(equipmentName, motorNumber)
	if !ok {
		return ""
	}
	return p.Label()
}
