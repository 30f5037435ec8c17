/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package predicate

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
)

// Lookup identifies the comparison applied between a record field and a constraint value.
type Lookup string

const (
	Exact       Lookup = "exact"
	IExact      Lookup = "iexact"
	GreaterThan Lookup = "gt"
	GreaterEq   Lookup = "gte"
	LessThan    Lookup = "lt"
	LessEq      Lookup = "lte"
	Contains    Lookup = "contains"
	IContains   Lookup = "icontains"
	In          Lookup = "in"
	StartsWith  Lookup = "startswith"
	IStartsWith Lookup = "istartswith"
	EndsWith    Lookup = "endswith"
	IEndsWith   Lookup = "iendswith"
	Range       Lookup = "range"
	Year        Lookup = "year"
	Month       Lookup = "month"
	Day         Lookup = "day"
	IsNull      Lookup = "isnull"
)

// matchFunc evaluates a normalized record value against a normalized constraint value.
type matchFunc func(a, b any) (bool, error)

// resolver maps each lookup to its in-memory evaluation.
var resolver = map[Lookup]matchFunc{
	Exact:  matchEqual,
	IExact: stringPair(strings.EqualFold),
	GreaterThan: func(a, b any) (bool, error) {
		c, err := compareValues(a, b)
		return c > 0, err
	},
	GreaterEq: func(a, b any) (bool, error) {
		c, err := compareValues(a, b)
		return c >= 0, err
	},
	LessThan: func(a, b any) (bool, error) {
		c, err := compareValues(a, b)
		return c < 0, err
	},
	LessEq: func(a, b any) (bool, error) {
		c, err := compareValues(a, b)
		return c <= 0, err
	},
	Contains:   stringPair(strings.Contains),
	IContains:  stringPair(containsFold),
	In:         matchIn,
	StartsWith: stringPair(strings.HasPrefix),
	IStartsWith: stringPair(func(a, b string) bool {
		return strings.HasPrefix(strings.ToLower(a), strings.ToLower(b))
	}),
	EndsWith: stringPair(strings.HasSuffix),
	IEndsWith: stringPair(func(a, b string) bool {
		return strings.HasSuffix(strings.ToLower(a), strings.ToLower(b))
	}),
	Range: matchRange,
	Year:  datePart(func(t time.Time) int { return t.Year() }),
	Month: datePart(func(t time.Time) int { return int(t.Month()) }),
	Day:   datePart(func(t time.Time) int { return t.Day() }),
	IsNull: func(a, b any) (bool, error) {
		want, ok := b.(bool)
		if !ok {
			return false, fmt.Errorf("isnull expects a bool value, got %T", b)
		}
		return (a == nil) == want, nil
	},
}

// Compare orders two record field values after normalization, returning -1,
// 0 or 1. Values that are not mutually comparable yield an error.
func Compare(a, b any) (int, error) {
	return compareValues(normalize(a), normalize(b))
}

// KnownLookup reports whether name is a recognized lookup term.
func KnownLookup(name string) bool {
	_, ok := resolver[Lookup(name)]
	return ok
}

// normalize collapses pointers, named string types and numeric widths so that
// lookup evaluations compare like with like. Nil pointers normalize to nil.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	if dt, ok := v.(strfmt.DateTime); ok {
		return time.Time(dt)
	}
	if dt, ok := v.(*strfmt.DateTime); ok {
		if dt == nil {
			return nil
		}
		return time.Time(*dt)
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if t, ok := rv.Interface().(time.Time); ok {
		return t
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return rv.Interface()
	}
}

func matchEqual(a, b any) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return av == bv, nil
		case float64:
			return float64(av) == bv, nil
		}
	case float64:
		switch bv := b.(type) {
		case int64:
			return av == float64(bv), nil
		case float64:
			return av == bv, nil
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Equal(bv), nil
		}
	}
	return reflect.DeepEqual(a, b), nil
}

// compareValues returns -1, 0 or 1 for ordered values, or an error when the
// operands are not mutually comparable.
func compareValues(a, b any) (int, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("cannot order nil values")
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), nil
		}
	case int64:
		if bf, ok := toFloat(b); ok {
			return compareFloat(float64(av), bf), nil
		}
	case float64:
		if bf, ok := toFloat(b); ok {
			return compareFloat(av, bf), nil
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv), nil
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return compareBool(av, bv), nil
		}
	}
	return 0, fmt.Errorf("cannot compare %T with %T", a, b)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}

func toFloat(v any) (float64, bool) {
	switch tv := v.(type) {
	case int64:
		return float64(tv), true
	case float64:
		return tv, true
	default:
		return 0, false
	}
}

func stringPair(fn func(a, b string) bool) matchFunc {
	return func(a, b any) (bool, error) {
		as, aok := a.(string)
		bs, bok := b.(string)
		if !aok || !bok {
			return false, fmt.Errorf("string lookup requires string operands, got %T and %T", a, b)
		}
		return fn(as, bs), nil
	}
}

func containsFold(a, b string) bool {
	return strings.Contains(strings.ToLower(a), strings.ToLower(b))
}

func matchIn(a, b any) (bool, error) {
	rv := reflect.ValueOf(b)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return false, fmt.Errorf("in lookup expects a slice value, got %T", b)
	}
	for i := 0; i < rv.Len(); i++ {
		ok, err := matchEqual(a, normalize(rv.Index(i).Interface()))
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func matchRange(a, b any) (bool, error) {
	rv := reflect.ValueOf(b)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Len() != 2 {
		return false, fmt.Errorf("range lookup expects a two-element slice, got %T", b)
	}
	lo := normalize(rv.Index(0).Interface())
	hi := normalize(rv.Index(1).Interface())
	cl, err := compareValues(a, lo)
	if err != nil {
		return false, err
	}
	ch, err := compareValues(a, hi)
	if err != nil {
		return false, err
	}
	return cl >= 0 && ch <= 0, nil
}

func datePart(part func(time.Time) int) matchFunc {
	return func(a, b any) (bool, error) {
		at, ok := a.(time.Time)
		if !ok {
			return false, fmt.Errorf("date lookup requires a time value, got %T", a)
		}
		want, ok := b.(int64)
		if !ok {
			return false, fmt.Errorf("date lookup requires an integer value, got %T", b)
		}
		return int64(part(at)) == want, nil
	}
}
