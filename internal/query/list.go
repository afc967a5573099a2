package query

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"finance-tracker/internal/util"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// option keys that never become filter predicates
var reservedKeys = map[string]bool{
	"search":   true,
	"sort":     true,
	"limit":    true,
	"page":     true,
	"fields":   true,
	"sortBy":   true,
	"sortType": true,
}

const (
	defaultPage  = 1
	defaultLimit = 10
	defaultSort  = "updated_at"
)

type cond struct {
	expr string
	args []interface{}
}

// Pagination is the metadata half of a list response envelope.
type Pagination struct {
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
	TotalPage int     `json:"totalPage"`
	Total     int64   `json:"total"`
	PrevPage  *string `json:"prevPage"`
	NextPage  *string `json:"nextPage"`
}

// List builds a filtered, searched, sorted, projected, optionally joined
// and paginated query. Stages apply in a fixed order:
//
//	Filter -> Search -> Sort -> SelectFields -> Populate -> Paginate -> Execute
//
// The zero result set is a valid outcome, never an error.
type List struct {
	db      *gorm.DB
	spec    Spec
	opts    url.Values
	baseURL string

	conds    []cond
	order    string
	selects  []string
	preloads []string
	page     int
	limit    int
	err      error
}

// NewList wraps a collection handle. The handle must carry the model (and
// any fixed scoping such as the owner predicate) already, e.g.
//
//	NewList(db.Model(&models.Expense{}).Where("owner_id = ?", id), spec, opts, baseURL)
func NewList(db *gorm.DB, spec Spec, opts url.Values, baseURL string) List {
	return List{
		db:      db,
		spec:    spec,
		opts:    opts,
		baseURL: baseURL,
		page:    defaultPage,
		limit:   defaultLimit,
	}
}

func (q List) withCond(expr string, args ...interface{}) List {
	conds := make([]cond, len(q.conds), len(q.conds)+1)
	copy(conds, q.conds)
	q.conds = append(conds, cond{expr: expr, args: args})
	return q
}

// Filter turns every non-reserved, recognized option key into an
// exact-match predicate. Unknown keys are dropped; malformed identifier
// values fail the query.
func (q List) Filter() List {
	if q.err != nil {
		return q
	}
	for key, vals := range q.opts {
		if reservedKeys[key] || len(vals) == 0 {
			continue
		}
		kind, ok := q.spec.Filterable[key]
		if !ok {
			continue
		}
		col, ok := q.spec.column(key)
		if !ok {
			continue
		}
		val := vals[0]
		if kind == FilterID && !util.IsUUID(val) {
			q.err = util.BadRequest(fmt.Sprintf("invalid value for %q filter", key))
			return q
		}
		q = q.withCond(col+" = ?", val)
	}
	return q
}

// Search adds a case-insensitive substring match over the collection's
// searchable fields, OR-combined and merged into the filter.
func (q List) Search() List {
	if q.err != nil {
		return q
	}
	term := strings.TrimSpace(q.opts.Get("search"))
	if term == "" || len(q.spec.Searchable) == 0 {
		return q
	}

	var exprs []string
	var args []interface{}
	pattern := "%" + strings.ToLower(term) + "%"
	for _, field := range q.spec.Searchable {
		col, ok := q.spec.column(field)
		if !ok {
			continue
		}
		exprs = append(exprs, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}
	if len(exprs) == 0 {
		return q
	}
	return q.withCond("("+strings.Join(exprs, " OR ")+")", args...)
}

// Sort orders by a single field, descending unless sortType is "asc".
// Unrecognized or missing sort fields fall back to updatedAt.
func (q List) Sort() List {
	field := q.opts.Get("sortBy")
	if field == "" {
		field = q.opts.Get("sort")
	}
	col, ok := q.spec.column(field)
	if !ok {
		col = defaultSort
	}
	dir := "DESC"
	if q.opts.Get("sortType") == "asc" {
		dir = "ASC"
	}
	q.order = col + " " + dir
	return q
}

// SelectFields projects the comma-separated fields option if present, else
// the collection's default field list if any, else every exposed field.
// The id is always included; unknown names are ignored.
func (q List) SelectFields() List {
	q.selects = projectFields(q.spec, q.opts.Get("fields"))
	return q
}

// Populate joins the collection's populatable relations. When a fields
// option was given, only relations named in it are joined; the rest stay
// raw foreign-key references.
func (q List) Populate() List {
	q.preloads, q.selects = resolveRelations(q.spec, q.opts.Get("fields"), q.selects)
	return q
}

// Paginate reads page and limit options, coercing strings and substituting
// defaults for absent or non-numeric values.
func (q List) Paginate() List {
	q.page = parsePositive(q.opts.Get("page"), defaultPage)
	q.limit = parsePositive(q.opts.Get("limit"), defaultLimit)
	return q
}

// Execute runs the materialized query and, concurrently, a count of all
// documents matching the same filter. dest must be a pointer to a slice of
// the collection's model.
func (q List) Execute(ctx context.Context, dest interface{}) (Pagination, error) {
	p := Pagination{Page: q.page, Limit: q.limit}
	if q.err != nil {
		return p, q.err
	}

	filtered := q.db.WithContext(ctx)
	for _, c := range q.conds {
		filtered = filtered.Where(c.expr, c.args...)
	}

	var total int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return filtered.Session(&gorm.Session{}).WithContext(gctx).Count(&total).Error
	})
	g.Go(func() error {
		tx := filtered.Session(&gorm.Session{}).WithContext(gctx)
		if len(q.selects) > 0 {
			tx = tx.Select(q.selects)
		}
		for _, assoc := range q.preloads {
			tx = tx.Preload(assoc)
		}
		if q.order != "" {
			tx = tx.Order(q.order)
		}
		return tx.Offset((q.page - 1) * q.limit).Limit(q.limit).Find(dest).Error
	})
	if err := g.Wait(); err != nil {
		return p, err
	}

	p.Total = total
	if total > 0 {
		p.TotalPage = int((total + int64(q.limit) - 1) / int64(q.limit))
	}
	if q.page < p.TotalPage {
		next := q.pageURL(q.page + 1)
		p.NextPage = &next
	}
	if q.page > 1 {
		prev := q.pageURL(q.page - 1)
		p.PrevPage = &prev
	}
	return p, nil
}

// pageURL rebuilds the original options with page replaced, percent-encoded.
func (q List) pageURL(page int) string {
	vals := url.Values{}
	for key, vs := range q.opts {
		for _, v := range vs {
			vals.Add(key, v)
		}
	}
	vals.Set("page", strconv.Itoa(page))
	return q.baseURL + "?" + vals.Encode()
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// projectFields resolves a comma-separated fields option into a column
// list. An empty or wholly unrecognized option yields nil, meaning the
// full exposed projection.
func projectFields(spec Spec, rawFields string) []string {
	var fields []string
	switch {
	case rawFields != "":
		for _, f := range strings.Split(rawFields, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	case len(spec.DefaultFields) > 0:
		fields = spec.DefaultFields
	default:
		return nil
	}

	cols := []string{"id"}
	seen := map[string]bool{"id": true}
	for _, f := range fields {
		col, ok := spec.column(f)
		if !ok || seen[col] {
			continue
		}
		seen[col] = true
		cols = append(cols, col)
	}
	if len(cols) == 1 {
		// nothing recognized, use the full projection
		return nil
	}
	return cols
}

// resolveRelations picks the associations to preload and makes sure their
// foreign key columns survive a narrowed projection.
func resolveRelations(spec Spec, rawFields string, selects []string) (preloads, outSelects []string) {
	requested := map[string]bool{}
	if rawFields != "" {
		for _, f := range strings.Split(rawFields, ",") {
			requested[strings.TrimSpace(f)] = true
		}
	}

	outSelects = selects
	for _, rel := range spec.Relations {
		if len(requested) > 0 && !requested[rel.Field] {
			continue
		}
		preloads = append(preloads, rel.Assoc)
		if len(outSelects) > 0 && !containsString(outSelects, rel.FKCol) {
			cols := make([]string, len(outSelects), len(outSelects)+1)
			copy(cols, outSelects)
			outSelects = append(cols, rel.FKCol)
		}
	}
	return preloads, outSelects
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
