package query

import (
	"context"
	"errors"
	"net/url"

	"gorm.io/gorm"
)

// Single builds a single-record lookup over a caller-supplied exact-match
// predicate set. Per-user scoping is enforced by the predicate (e.g.
// {"id": ..., "owner_id": ...}); the builder itself does no authorization.
type Single struct {
	db       *gorm.DB
	spec     Spec
	filter   map[string]interface{}
	opts     url.Values
	selects  []string
	preloads []string
}

// NewSingle wraps a collection handle carrying the model. Field selection
// from the fields option is applied immediately.
func NewSingle(db *gorm.DB, spec Spec, filter map[string]interface{}, opts url.Values) Single {
	return Single{
		db:      db,
		spec:    spec,
		filter:  filter,
		opts:    opts,
		selects: projectFields(spec, opts.Get("fields")),
	}
}

// Populate joins every populatable relation, unless the expand option is
// explicitly "false".
func (q Single) Populate() Single {
	if q.opts.Get("expand") == "false" {
		return q
	}
	q.preloads, q.selects = resolveRelations(q.spec, "", q.selects)
	return q
}

// Execute runs the lookup. A missing record yields (false, nil); callers
// translate that into their own NotFound error.
func (q Single) Execute(ctx context.Context, dest interface{}) (bool, error) {
	tx := q.db.WithContext(ctx).Where(q.filter)
	if len(q.selects) > 0 {
		tx = tx.Select(q.selects)
	}
	for _, assoc := range q.preloads {
		tx = tx.Preload(assoc)
	}
	if err := tx.First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
