// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// Each store wraps the connection of one database. Settings are read with
// raw joins across the service tables; feature rows are read as column maps
// because their columns depend on the motor category.
package gorm
