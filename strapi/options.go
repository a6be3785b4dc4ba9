package strapi

import "time"

// FetchOptions describes a single read against the content API. Every field is
// optional; the zero value encodes to an empty query string.
type FetchOptions struct {
	// Populate selects relations to expand.
	Populate Populate
	// Filters restricts the returned entries.
	Filters Filters
	// Sort lists "field:direction" pairs, highest priority first.
	Sort []string
	// Pagination selects a page (page/pageSize) or an offset window (start/limit).
	Pagination *Pagination
	// Locale requests a localized variant, e.g. "nb-NO".
	Locale string
	// Fields limits each entry to the named attributes.
	Fields []string

	// Revalidate is how long a cached response may be served before refetching.
	// Use NeverRevalidate to keep a cached response forever. Zero disables the cache.
	Revalidate *time.Duration
	// Cache is consulted only when Revalidate is nil.
	Cache CacheMode
}

// NeverRevalidate marks a response as cacheable without expiry.
const NeverRevalidate time.Duration = -1

// RevalidateAfter returns a Revalidate value for d.
func RevalidateAfter(d time.Duration) *time.Duration {
	return &d
}

// CacheMode mirrors the fetch cache directives understood by the transport layer.
type CacheMode string

const (
	CacheDefault      CacheMode = "default"
	CacheNoStore      CacheMode = "no-store"
	CacheReload       CacheMode = "reload"
	CacheNoCache      CacheMode = "no-cache"
	CacheForceCache   CacheMode = "force-cache"
	CacheOnlyIfCached CacheMode = "only-if-cached"
)

// Valid reports whether m is empty or one of the known modes.
func (m CacheMode) Valid() bool {
	switch m {
	case "", CacheDefault, CacheNoStore, CacheReload, CacheNoCache, CacheForceCache, CacheOnlyIfCached:
		return true
	}
	return false
}

// Populate describes relation expansion. Build it with PopulateFields or PopulateDeep.
type Populate struct {
	names []string
	deep  map[string]any
}

// PopulateFields expands the named relations. A single name is the plain string
// form ("*" expands every first-level relation).
func PopulateFields(names ...string) Populate {
	return Populate{names: append([]string(nil), names...)}
}

// PopulateDeep expands nested relations. The tree is sent as one JSON value.
func PopulateDeep(tree map[string]any) Populate {
	return Populate{deep: tree}
}

// IsZero reports whether no population was requested.
func (p Populate) IsZero() bool {
	return len(p.names) == 0 && p.deep == nil
}

// Names returns the relation names of a flat populate.
func (p Populate) Names() []string {
	return append([]string(nil), p.names...)
}

// Deep returns the relation tree of a deep populate, or nil.
func (p Populate) Deep() map[string]any {
	return p.deep
}

// Filters is an ordered list of per-field constraints.
type Filters []FieldFilter

// FieldFilter constrains one field. With nil Conditions, Value is compared for
// equality; otherwise each condition is emitted as filters[field][operator] and
// Value is ignored.
type FieldFilter struct {
	Field      string
	Value      any
	Conditions []Condition
}

// Condition is one operator/value pair, e.g. {"$gte", 10}.
type Condition struct {
	Operator string
	Value    any
}

// Eq matches entries whose field equals value.
func Eq(field string, value any) FieldFilter {
	return FieldFilter{Field: field, Value: value}
}

// Where constrains field with the given operator conditions, in order.
func Where(field string, conds ...Condition) FieldFilter {
	if conds == nil {
		conds = []Condition{}
	}
	return FieldFilter{Field: field, Conditions: conds}
}

// Op builds a Condition.
func Op(operator string, value any) Condition {
	return Condition{Operator: operator, Value: value}
}

// Pagination selects a window of results. Nil fields are omitted from the query.
type Pagination struct {
	Page     *int
	PageSize *int
	Start    *int
	Limit    *int
}

// Page requests page-based pagination.
func Page(page, pageSize int) *Pagination {
	return &Pagination{Page: Int(page), PageSize: Int(pageSize)}
}

// Offset requests offset-based pagination.
func Offset(start, limit int) *Pagination {
	return &Pagination{Start: Int(start), Limit: Int(limit)}
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
