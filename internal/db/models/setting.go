// Package models contains database model definitions.
package models

// Setting is a named runtime value that overrides the static configuration,
// for example a feature toggle or the maintenance state.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"size:191;uniqueIndex"`
	Value []byte
}
