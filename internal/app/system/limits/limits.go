// internal/app/system/limits/limits.go
package limits

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Request body size limits for the JSON endpoints.
const (
	// MaxInfoRequestSize bounds a request-info submission.
	MaxInfoRequestSize = 16 << 10 // 16 KB

	// MaxJSONBodySize bounds every other JSON body (recommendations,
	// saved resources, search history, location).
	MaxJSONBodySize = 64 << 10 // 64 KB
)

// ErrTooLarge is returned by DecodeJSON when the body exceeds its limit.
var ErrTooLarge = errors.New("request body too large")

// DecodeJSON decodes a single JSON value from r's body into v, reading at
// most max bytes. Unknown fields are ignored.
func DecodeJSON(w http.ResponseWriter, r *http.Request, max int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, max)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return ErrTooLarge
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty request body")
		}
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
