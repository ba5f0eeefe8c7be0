package specification

import "gorm.io/gorm"

// Specification narrows a query. Repositories apply them in order, so
// filters, ordering and paging compose like query builder calls.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// And groups several specifications into one.
type And []Specification

func (s And) Apply(db *gorm.DB) *gorm.DB {
	for _, spec := range s {
		db = spec.Apply(db)
	}
	return db
}
