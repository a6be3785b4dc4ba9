package strapi

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// pair is one encoded key/value. Order matters, so url.Values is not used.
type pair struct {
	key   string
	value string
}

// Encode renders opts as a query string without the leading "?". Keys are
// emitted in the order populate, filters, sort, pagination, locale, fields, and
// repeated keys keep the order of their input.
func Encode(opts FetchOptions) (string, error) {
	pairs, err := opts.pairs()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.value))
	}
	return sb.String(), nil
}

func (o FetchOptions) pairs() ([]pair, error) {
	var pairs []pair

	switch {
	case o.Populate.deep != nil:
		raw, err := json.Marshal(o.Populate.deep)
		if err != nil {
			return nil, &ConfigurationError{Field: "populate", Reason: err.Error()}
		}
		pairs = append(pairs, pair{"populate", string(raw)})
	default:
		for _, name := range o.Populate.names {
			if name == "" {
				return nil, &ConfigurationError{Field: "populate", Reason: "empty relation name"}
			}
			pairs = append(pairs, pair{"populate", name})
		}
	}

	for _, f := range o.Filters {
		if f.Field == "" {
			return nil, &ConfigurationError{Field: "filters", Reason: "empty field name"}
		}
		if f.Conditions == nil {
			v, err := formatValue(f.Value)
			if err != nil {
				return nil, &ConfigurationError{Field: "filters[" + f.Field + "]", Reason: err.Error()}
			}
			pairs = append(pairs, pair{"filters[" + f.Field + "]", v})
			continue
		}
		for _, c := range f.Conditions {
			if c.Operator == "" {
				return nil, &ConfigurationError{Field: "filters[" + f.Field + "]", Reason: "empty operator"}
			}
			key := "filters[" + f.Field + "][" + c.Operator + "]"
			v, err := formatValue(c.Value)
			if err != nil {
				return nil, &ConfigurationError{Field: key, Reason: err.Error()}
			}
			pairs = append(pairs, pair{key, v})
		}
	}

	for _, s := range o.Sort {
		if s == "" {
			return nil, &ConfigurationError{Field: "sort", Reason: "empty sort field"}
		}
		pairs = append(pairs, pair{"sort", s})
	}

	if p := o.Pagination; p != nil {
		for _, kv := range []struct {
			key string
			val *int
		}{
			{"page", p.Page},
			{"pageSize", p.PageSize},
			{"start", p.Start},
			{"limit", p.Limit},
		} {
			if kv.val == nil {
				continue
			}
			if *kv.val < 0 {
				return nil, &ConfigurationError{Field: "pagination[" + kv.key + "]", Reason: "must not be negative"}
			}
			pairs = append(pairs, pair{"pagination[" + kv.key + "]", strconv.Itoa(*kv.val)})
		}
	}

	if o.Locale != "" {
		pairs = append(pairs, pair{"locale", o.Locale})
	}

	for _, f := range o.Fields {
		if f == "" {
			return nil, &ConfigurationError{Field: "fields", Reason: "empty field name"}
		}
		pairs = append(pairs, pair{"fields", f})
	}

	if !o.Cache.Valid() {
		return nil, &ConfigurationError{Field: "cache", Reason: fmt.Sprintf("unknown mode %q", o.Cache)}
	}

	return pairs, nil
}

// formatValue stringifies a scalar filter value.
func formatValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "null", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case time.Time:
		return x.Format(time.RFC3339), nil
	case fmt.Stringer:
		return x.String(), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("non-finite number %v", f)
		}
		bitSize := 64
		if rv.Kind() == reflect.Float32 {
			bitSize = 32
		}
		return strconv.FormatFloat(f, 'f', -1, bitSize), nil
	}
	return "", fmt.Errorf("unsupported value type %T", v)
}

// ParseQuery reads a query string produced by Encode back into FetchOptions.
// Values are recovered as strings and pagination as integers; keys outside the
// content API grammar are rejected.
func ParseQuery(raw string) (FetchOptions, error) {
	var opts FetchOptions
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return opts, nil
	}

	filterIndex := make(map[string]int)
	var names []string

	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return FetchOptions{}, &ConfigurationError{Field: k, Reason: err.Error()}
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return FetchOptions{}, &ConfigurationError{Field: key, Reason: err.Error()}
		}

		switch {
		case key == "populate":
			if strings.HasPrefix(value, "{") {
				var tree map[string]any
				if err := json.Unmarshal([]byte(value), &tree); err != nil {
					return FetchOptions{}, &ConfigurationError{Field: "populate", Reason: err.Error()}
				}
				opts.Populate = PopulateDeep(tree)
				continue
			}
			names = append(names, value)
		case key == "sort":
			opts.Sort = append(opts.Sort, value)
		case key == "locale":
			opts.Locale = value
		case key == "fields":
			opts.Fields = append(opts.Fields, value)
		case strings.HasPrefix(key, "filters["):
			field, op, err := splitFilterKey(key)
			if err != nil {
				return FetchOptions{}, err
			}
			i, ok := filterIndex[field]
			if !ok {
				i = len(opts.Filters)
				filterIndex[field] = i
				opts.Filters = append(opts.Filters, FieldFilter{Field: field})
			}
			if op == "" {
				opts.Filters[i].Value = value
			} else {
				opts.Filters[i].Conditions = append(opts.Filters[i].Conditions, Op(op, value))
			}
		case strings.HasPrefix(key, "pagination["):
			if opts.Pagination == nil {
				opts.Pagination = &Pagination{}
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				return FetchOptions{}, &ConfigurationError{Field: key, Reason: "not an integer"}
			}
			switch key {
			case "pagination[page]":
				opts.Pagination.Page = Int(n)
			case "pagination[pageSize]":
				opts.Pagination.PageSize = Int(n)
			case "pagination[start]":
				opts.Pagination.Start = Int(n)
			case "pagination[limit]":
				opts.Pagination.Limit = Int(n)
			default:
				return FetchOptions{}, &ConfigurationError{Field: key, Reason: "unknown pagination key"}
			}
		default:
			return FetchOptions{}, &ConfigurationError{Field: key, Reason: "unknown query key"}
		}
	}

	if len(names) > 0 {
		if opts.Populate.deep != nil {
			return FetchOptions{}, &ConfigurationError{Field: "populate", Reason: "mixes relation names and a relation tree"}
		}
		opts.Populate = PopulateFields(names...)
	}
	return opts, nil
}

// splitFilterKey splits "filters[field]" or "filters[field][op]".
func splitFilterKey(key string) (field, op string, err error) {
	rest := strings.TrimPrefix(key, "filters[")
	field, rest, ok := strings.Cut(rest, "]")
	if !ok || field == "" {
		return "", "", &ConfigurationError{Field: key, Reason: "malformed filter key"}
	}
	if rest == "" {
		return field, "", nil
	}
	if !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") || len(rest) < 3 {
		return "", "", &ConfigurationError{Field: key, Reason: "malformed filter operator"}
	}
	return field, rest[1 : len(rest)-1], nil
}

// ParseFilter reads one filter in query notation, e.g. "status=published" or
// "price[$gte]=10".
func ParseFilter(expr string) (FieldFilter, error) {
	k, v, ok := strings.Cut(expr, "=")
	if !ok {
		return FieldFilter{}, &ConfigurationError{Field: "filters", Reason: fmt.Sprintf("expected field=value, got %q", expr)}
	}
	key := "filters[" + k + "]"
	if i := strings.IndexByte(k, '['); i >= 0 {
		key = "filters[" + k[:i] + "]" + k[i:]
	}
	field, op, err := splitFilterKey(key)
	if err != nil {
		return FieldFilter{}, err
	}
	if op == "" {
		return Eq(field, v), nil
	}
	return Where(field, Op(op, v)), nil
}

// MergeFilters folds filters on the same field into one FieldFilter, keeping the
// order in which fields first appear.
func MergeFilters(filters ...FieldFilter) Filters {
	var out Filters
	index := make(map[string]int)
	for _, f := range filters {
		i, ok := index[f.Field]
		if !ok {
			index[f.Field] = len(out)
			merged := FieldFilter{Field: f.Field, Value: f.Value}
			if f.Conditions != nil {
				merged.Conditions = append([]Condition{}, f.Conditions...)
			}
			out = append(out, merged)
			continue
		}
		if f.Conditions == nil {
			out[i].Value = f.Value
			continue
		}
		out[i].Conditions = append(out[i].Conditions, f.Conditions...)
	}
	return out
}
