package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/onepredict/lges-query-server/pkg/model"
)

// SeedClass is one seed file and the table it fills.
type SeedClass struct {
	// Name is the file name prefix, e.g. "Motor" for Motor-1.yml
	Name string
	// Database names the connection the rows are written to
	Database string
	// Rows returns a pointer to an empty slice of the row type
	Rows func() interface{}
}

// LamiSeeds are the seed classes of the lamination bucket, in dependency order.
var LamiSeeds = []SeedClass{
	{"Line", "service", func() interface{} { return &[]model.Line{} }},
	{"Equipment", "service", func() interface{} { return &[]model.Equipment{} }},
	{"Motor", "service", func() interface{} { return &[]model.Motor{} }},
	{"MotorBearing", "service", func() interface{} { return &[]model.MotorBearing{} }},
	{"ExternalBearing", "service", func() interface{} { return &[]model.ExternalBearing{} }},
	{"TensionBearing", "service", func() interface{} { return &[]model.TensionBearing{} }},
	{"UniformSpeedThreshold", "service", func() interface{} { return &[]model.UniformSpeedThreshold{} }},
	{"Variable", "service", func() interface{} { return &[]model.Variable{} }},
	{"VariableSpeedThreshold", "service", func() interface{} { return &[]model.VariableSpeedThreshold{} }},
	{"PLCModel", "plc", func() interface{} { return &[]model.PLCModel{} }},
	{"MemoryMapping", "plc", func() interface{} { return &[]model.MemoryMapping{} }},
	{"Config", "fdc", func() interface{} { return &[]model.FDCConfig{} }},
}

// BasicSeeds are the seed classes of every other bucket.
var BasicSeeds = []SeedClass{
	{"Line", "service", func() interface{} { return &[]model.Line{} }},
	{"Equipment", "service", func() interface{} { return &[]model.Equipment{} }},
	{"Motor", "service", func() interface{} { return &[]model.Motor{} }},
}

// SeedOptions selects the seed files to load.
type SeedOptions struct {
	// Dir holds one directory per bucket, usually ./yaml
	Dir    string
	Bucket string
	// Line suffixes the file names of the lami bucket
	Line string
	// Databases limits seeding to these connections when set
	Databases []string
}

// SeedResult counts the rows written per class.
type SeedResult struct {
	Class    string
	File     string
	Inserted int64
}

// Classes returns the seed classes of the bucket.
func (o SeedOptions) Classes() []SeedClass {
	classes := BasicSeeds
	if o.Bucket == "lami" {
		classes = LamiSeeds
	}
	if len(o.Databases) == 0 {
		return classes
	}

	var selected []SeedClass
	for _, class := range classes {
		for _, name := range o.Databases {
			if class.Database == name {
				selected = append(selected, class)
				break
			}
		}
	}
	return selected
}

// Path returns the seed file of a class.
func (o SeedOptions) Path(class SeedClass) string {
	name := class.Name + ".yml"
	if o.Bucket == "lami" {
		name = fmt.Sprintf("%s-%s.yml", class.Name, o.Line)
	}
	return filepath.Join(o.Dir, o.Bucket, name)
}

// Seed loads every seed file of the bucket. Missing files are skipped and
// rows that already exist are left untouched.
func Seed(conns *Connections, opts SeedOptions) ([]SeedResult, error) {
	var results []SeedResult
	for _, class := range opts.Classes() {
		database := conns.ByName(class.Database)
		if database == nil {
			return results, fmt.Errorf("%s: no %s connection", class.Name, class.Database)
		}
		path := opts.Path(class)
		inserted, err := seedFile(database, path, class.Rows())
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return results, fmt.Errorf("%s: %w", class.Name, err)
		}
		results = append(results, SeedResult{Class: class.Name, File: path, Inserted: inserted})
	}
	return results, nil
}

func seedFile(database *gorm.DB, path string, rows interface{}) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if err := yaml.Unmarshal(data, rows); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if isEmpty(rows) {
		return 0, nil
	}

	tx := database.Clauses(clause.OnConflict{DoNothing: true}).Create(rows)
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to insert rows of %s: %w", path, tx.Error)
	}
	return tx.RowsAffected, nil
}

func isEmpty(rows interface{}) bool {
	v := reflect.ValueOf(rows)
	return v.Kind() == reflect.Ptr && v.Elem().Len() == 0
}
