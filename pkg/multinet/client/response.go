package client

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the media type of the response without parameters.
func (r *Response) ContentType() string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	}
	return mediaType
}

// IsJSON reports whether the server declared a JSON body.
func (r *Response) IsJSON() bool {
	ct := r.ContentType()
	return ct == "application/json" || strings.HasSuffix(ct, "+json")
}

// Text returns the body as text.
func (r *Response) Text() string {
	return string(r.Body)
}

// Decode stores the response body in v. JSON responses are unmarshaled into v.
// Any other content type is treated as text and can only be decoded into a
// *string. A nil v discards the body.
func (r *Response) Decode(v any) error {
	if v == nil {
		return nil
	}

	if r.IsJSON() {
		if len(r.Body) == 0 {
			return nil
		}
		if err := json.Unmarshal(r.Body, v); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	switch out := v.(type) {
	case *string:
		*out = r.Text()
	case *[]byte:
		*out = append((*out)[:0], r.Body...)
	default:
		return fmt.Errorf("%w: cannot decode %q into %T", ErrUnexpectedContentType, r.ContentType(), v)
	}
	return nil
}
