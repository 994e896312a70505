// Package pagination implements the opaque cursor tokens used to resume a
// paginated scan. A token is the JSON-serialized resume position wrapped in
// URL-safe base64 so it can travel in a query parameter. Tokens are neither
// signed nor expiring; a decode failure is the only rejection.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

var ErrInvalidCursor = errors.New("invalid pagination cursor")

// Cursor is the resume position of a scan: the last key the previous page
// returned.
type Cursor struct {
	LastID string `json:"lastId"`
}

func Encode(c Cursor) string {
	data, err := json.Marshal(c)
	if err != nil {
		// Cursor contains only a string field; this cannot happen.
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

func Decode(token string) (Cursor, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	return c, nil
}
