package gorm

import "gorm.io/gorm"

// columnsExcept lists the columns of a model except the skipped ones, so
// updates also write zero values.
func columnsExcept(tx *gorm.DB, row interface{}, skip ...string) ([]string, error) {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(row); err != nil {
		return nil, err
	}
	skipped := make(map[string]bool, len(skip))
	for _, name := range skip {
		skipped[name] = true
	}
	var columns []string
	for _, f := range stmt.Schema.Fields {
		if f.DBName == "" || skipped[f.DBName] {
			continue
		}
		columns = append(columns, f.DBName)
	}
	return columns, nil
}
