package model

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// NormalizeList reads a list attribute that may have been stored by an older
// writer as a single scalar column. A non-empty list wins, then the scalar, then empty.
func NormalizeList(list []string, legacy *string) []string {
	if len(list) > 0 {
		return list
	}
	if legacy != nil && strings.TrimSpace(*legacy) != "" {
		return []string{*legacy}
	}
	return []string{}
}

// StringList decodes either a JSON string or a JSON array of strings.
// null and "" decode to an empty list; blank array entries are dropped.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var raw any
	if err := sonic.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*l = StringList{}
	case string:
		*l = compact([]string{t})
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("expected string list element, got %T", e)
			}
			out = append(out, s)
		}
		*l = compact(out)
	default:
		return fmt.Errorf("expected string or string list, got %T", raw)
	}
	return nil
}

// FirstNonEmpty returns the first list that has elements, else an empty list.
func FirstNonEmpty(lists ...StringList) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return []string(l)
		}
	}
	return []string{}
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
