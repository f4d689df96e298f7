package specification

import "gorm.io/gorm"

// Specification narrows a gorm query. Implementations are composed by
// repositories to build filtered, ordered and paginated reads.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
