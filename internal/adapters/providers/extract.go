package providers

import (
	"fmt"
	"strconv"
	"strings"
)

// Upstream payloads are optional/undefined-heavy and drift between API
// revisions, so rows are decoded as map[string]any and fields pulled out
// through tolerant dot-path lookups rather than rigid structs.

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstStr: first non-empty string across several paths.
func firstStr(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// getFloat: number from several paths (float64/int/string like "8,0" or "1,234").
func getFloat(m map[string]any, paths ...string) (float64, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			// "1,234" is thousands, "8,0" is a decimal comma
			if strings.Count(s, ",") == 1 && len(s)-strings.Index(s, ",") == 2 {
				s = strings.ReplaceAll(s, ",", ".")
			} else {
				s = strings.ReplaceAll(s, ",", "")
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// getInt: non-negative int from several paths, 0 when absent/malformed.
func getInt(m map[string]any, paths ...string) int {
	if f, ok := getFloat(m, paths...); ok && f > 0 {
		return int(f)
	}
	return 0
}

// anyToString renders ids that arrive as either strings or numbers.
func anyToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return fmt.Sprintf("%v", t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}
