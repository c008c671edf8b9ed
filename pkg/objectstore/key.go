package objectstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RawLineID replaces the line segment of raw data paths. Collectors
// write the line name there while the metadata tables use line id 1.
const RawLineID = 1

// RawPath is a parsed waveform key.
type RawPath struct {
	LineID      int
	EquipmentID int
	MotorNumber int
	AcqTime     time.Time
	Phase       string
}

// Key returns the object key of a waveform.
func Key(lineID, equipmentID, motorNumber int, acqTime time.Time, phase string) string {
	return fmt.Sprintf("/%d/%d/%d/%s_%s.zst",
		lineID, equipmentID, motorNumber, acqTime.Format("2006/01/02/150405"), phase)
}

// ParseRawPath splits a key such as /13/02/03/2023/04/12/045137_u.zst.
// The time is read in loc.
func ParseRawPath(path string, loc *time.Location) (RawPath, error) {
	parts := strings.Split(path, "/")
	if len(parts) != 8 || parts[0] != "" {
		return RawPath{}, fmt.Errorf("invalid raw data path %q", path)
	}

	equipmentID, err := strconv.Atoi(parts[2])
	if err != nil {
		return RawPath{}, fmt.Errorf("invalid equipment in %q: %w", path, err)
	}
	motorNumber, err := strconv.Atoi(parts[3])
	if err != nil {
		return RawPath{}, fmt.Errorf("invalid motor in %q: %w", path, err)
	}

	hhmmss, file, ok := strings.Cut(parts[7], "_")
	if !ok {
		return RawPath{}, fmt.Errorf("invalid file name in %q", path)
	}
	phase, _, _ := strings.Cut(file, ".")

	stamp := fmt.Sprintf("%s-%s-%s %s", parts[4], parts[5], parts[6], hhmmss)
	acqTime, err := time.ParseInLocation("2006-01-02 150405", stamp, loc)
	if err != nil {
		return RawPath{}, fmt.Errorf("invalid time in %q: %w", path, err)
	}

	return RawPath{
		LineID:      RawLineID,
		EquipmentID: equipmentID,
		MotorNumber: motorNumber,
		AcqTime:     acqTime,
		Phase:       phase,
	}, nil
}
