package syllabus

import "github.com/xraph/syllabus/internal/entity"

// Entity is the timestamp base embedded by all syllabus records.
type Entity = entity.Entity

// Lifecycle is the soft-delete state embedded by all syllabus records.
type Lifecycle = entity.Lifecycle

// NewEntity returns an Entity with both timestamps set to the current UTC time.
func NewEntity() Entity {
	return entity.New()
}
