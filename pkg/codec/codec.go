// Package codec centralizes request and response body encoding for the HTTP
// API. Records keep their field order under every codec.
package codec

import (
	"mime"
	"strings"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
	ContentType() string
}

// Default is the codec used when a request does not ask for another one.
var Default Codec = JSON{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "msgpack":
		return MsgPack{}, true
	default:
		return nil, false
	}
}

// ForContentType picks the codec for a Content-Type or Accept header value.
// Unknown or empty values select Default.
func ForContentType(header string) Codec {
	for _, part := range strings.Split(header, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mediaType {
		case "application/msgpack", "application/x-msgpack", "application/vnd.msgpack":
			return MsgPack{}
		case "application/json":
			return JSON{}
		}
	}
	return Default
}
