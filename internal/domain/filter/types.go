// Package filter describes list selections: simple field comparisons that storage
// backends translate natively, plus CEL expressions evaluated in memory.
package filter

import (
	"fmt"
	"strings"
)

// ComparisonType defines the comparison kinds.
type ComparisonType string

const (
	Equal       ComparisonType = "eq"
	NotEqual    ComparisonType = "neq"
	InList      ComparisonType = "in"
	Contains    ComparisonType = "contains"  // case-insensitive substring
	NotContains ComparisonType = "ncontains" // case-insensitive substring
	IsNull      ComparisonType = "null"      // empty
	IsNotNull   ComparisonType = "not_null"  // filled
)

// Item is one selection row. Field is the json name of the attribute.
type Item struct {
	Field    string         `json:"field"`
	Operator ComparisonType `json:"operator"`
	Value    any            `json:"value"`
}

// Match evaluates items against a flattened record (json name -> value).
// All items must match.
func Match(items []Item, fields map[string]any) (bool, error) {
	for _, item := range items {
		ok, err := matchOne(item, fields[item.Field])
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchOne(item Item, actual any) (bool, error) {
	got := stringOf(actual)

	switch item.Operator {
	case Equal, "":
		return got == stringOf(item.Value), nil
	case NotEqual:
		return got != stringOf(item.Value), nil
	case InList:
		values, ok := item.Value.([]string)
		if !ok {
			if raw, isAny := item.Value.([]any); isAny {
				for _, v := range raw {
					values = append(values, stringOf(v))
				}
			} else {
				return false, fmt.Errorf("operator %q needs a list value", item.Operator)
			}
		}
		for _, v := range values {
			if v == got {
				return true, nil
			}
		}
		return false, nil
	case Contains:
		return strings.Contains(strings.ToLower(got), strings.ToLower(stringOf(item.Value))), nil
	case NotContains:
		return !strings.Contains(strings.ToLower(got), strings.ToLower(stringOf(item.Value))), nil
	case IsNull:
		return got == "", nil
	case IsNotNull:
		return got != "", nil
	default:
		return false, fmt.Errorf("unsupported filter operator: %s", item.Operator)
	}
}

func stringOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	default:
		return fmt.Sprint(t)
	}
}
