package headers

import (
	"fmt"
	"net/http"
	"strings"
)

// Parse converts "Key: Value" strings into a header map with canonical keys.
// A later entry for the same key replaces an earlier one.
func Parse(h []string) (map[string]string, error) {
	m := make(map[string]string, len(h))
	for _, hdr := range h {
		key, value, ok := strings.Cut(hdr, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			return nil, fmt.Errorf("malformed header %q, expected \"Key: Value\"", hdr)
		}
		m[http.CanonicalHeaderKey(key)] = strings.TrimSpace(value)
	}
	return m, nil
}

// Apply sets every header in m on req, overriding existing values
func Apply(req *http.Request, m map[string]string) {
	for k, v := range m {
		req.Header.Set(k, v)
	}
}
