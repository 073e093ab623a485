// Package sorting orders dashboard record sets and holds the per-view sort state.
package sorting

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/aristath/taxboard/internal/domain"
)

// Direction is the sort direction of a view.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// DateKey is the key whose values are parsed as dates before comparison.
const DateKey = "date"

// ErrUnknownView is returned for a view id that has no sort configuration.
var ErrUnknownView = errors.New("unknown view")

// Config is the active sort of one view.
type Config struct {
	Key       string    `json:"key"`
	Direction Direction `json:"dir"`
}

// Record is anything whose fields can be looked up by key.
type Record interface {
	Field(key string) (any, bool)
}

// Sort returns a new slice holding records ordered by cfg. The input is left
// untouched. The sort is stable: equal elements keep their relative order.
func Sort[T Record](records []T, cfg Config) []T {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b T) int {
		c := Compare(a, b, cfg.Key)
		if cfg.Direction == Asc {
			return c
		}
		return -c
	})
	return out
}

// Compare compares the key field of two records in ascending order. Fields
// that are missing or of mismatched kinds compare as equal.
func Compare(a, b Record, key string) int {
	va, okA := a.Field(key)
	vb, okB := b.Field(key)
	if !okA || !okB {
		return 0
	}
	return compareValues(normalize(va, key), normalize(vb, key))
}

// normalize turns a raw field value into its comparable form: dates become
// instants, strings are lower-cased, integers are widened to float64.
func normalize(v any, key string) any {
	switch x := v.(type) {
	case string:
		if key == DateKey {
			return domain.DateOrEpoch(x)
		}
		return strings.ToLower(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	}
	return v
}

func compareValues(a, b any) int {
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	}
	return 0
}

func (c Config) String() string {
	return fmt.Sprintf("%s:%s", c.Key, c.Direction)
}
