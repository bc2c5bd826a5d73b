package content

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds SELECT ... FOR UPDATE on dialects that support it, so
// the delete cascades serialize with concurrent vote transactions holding the
// same target row. SQLite (used by the in-memory tests) has no row locks; its
// single-writer transactions give the same serialization.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
