package filter

// Record is anything a filter expression can be evaluated against. The map
// returned by FilterEnv exposes the record's fields by name, e.g. "Title".
type Record interface {
	FilterEnv() map[string]any
}

// Filter decides whether a record matches.
type Filter interface {
	// Match reports whether the record satisfies the filter.
	Match(record Record) bool

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (Filter, error)
}

// Apply returns the records that match f, in their original order. A nil f
// matches everything.
func Apply[T Record](f Filter, records []T) []T {
	if f == nil {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
