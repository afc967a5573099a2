// Package query builds paginated list queries and single-record lookups
// from untyped client options over a GORM collection handle.
//
// Builders are immutable values: every stage returns a new builder wrapping
// an updated query description, and Execute materializes it once.
package query

// FilterKind classifies how a recognized filter key is matched.
type FilterKind int

const (
	// FilterExact matches the column against the raw option value.
	FilterExact FilterKind = iota
	// FilterID is an exact match whose value must be a well-formed
	// record identifier. Malformed values fail the whole query instead
	// of being passed through to the store.
	FilterID
)

// Relation names a populatable association.
type Relation struct {
	Field string // field name as it appears in query options and responses
	Assoc string // GORM association to preload
	FKCol string // foreign key column backing the association
}

// Spec declares, per collection, which fields may be filtered, searched,
// selected, sorted and joined. Option keys not declared here are dropped.
// Internal bookkeeping columns are simply never declared.
type Spec struct {
	// Selectable maps exposed field names to their columns.
	Selectable map[string]string
	// DefaultFields, when set, narrows the projection used when the
	// client sends no fields option.
	DefaultFields []string
	// Searchable lists the fields scanned by the search option.
	Searchable []string
	// Filterable maps recognized filter keys to their match kind.
	Filterable map[string]FilterKind
	// Relations lists the populatable associations.
	Relations []Relation
}

func (s Spec) column(field string) (string, bool) {
	col, ok := s.Selectable[field]
	return col, ok
}
