package portal

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// toMap converts a typed payload into a generic map through its JSON
// form, so stripping can treat every target format uniformly.
func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("portal: marshal payload: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("portal: decode payload: %w", err)
	}
	return m, nil
}

// stripEmpty removes empty values from a payload map in place and
// returns it. Empty means nil, "", 0, empty slice or empty map. Keys
// listed in keep survive even when their value is zero, because for
// them zero is data (a property with no parking still reports 0
// parking lots).
func stripEmpty(m map[string]any, keep map[string]bool) map[string]any {
	for k, v := range m {
		if keep[k] {
			if v == nil {
				delete(m, k)
			}
			continue
		}
		switch val := v.(type) {
		case nil:
			delete(m, k)
		case string:
			if val == "" {
				delete(m, k)
			}
		case float64:
			if val == 0 {
				delete(m, k)
			}
		case bool:
			// Explicit booleans are always intentional.
		case []any:
			if len(val) == 0 {
				delete(m, k)
				continue
			}
			for i, item := range val {
				if nested, ok := item.(map[string]any); ok {
					val[i] = stripEmpty(nested, keep)
				}
			}
		case map[string]any:
			stripped := stripEmpty(val, keep)
			if len(stripped) == 0 {
				delete(m, k)
			}
		}
	}
	return m
}

// absoluteURL resolves a possibly site-relative media URL against the
// configured site base URL. Already absolute URLs pass through.
func absoluteURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
