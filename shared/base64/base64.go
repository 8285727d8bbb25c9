// Package base64 reads "data:<type>;base64,<payload>" URIs as sent by the
// image fields of JSON requests.
package base64

import (
	stdBase64 "encoding/base64"
	"strings"
)

const (
	prefix = "data:"
	marker = ";base64,"
)

// GetContentType returns the media type of a data URI, or "" when value is
// not one.
func GetContentType(value string) string {
	end := strings.Index(value, marker)
	if !strings.HasPrefix(value, prefix) || end < len(prefix) {
		return ""
	}

	return value[len(prefix):end]
}

// DecodedSize is the byte length of the payload once decoded. Values that are
// not data URIs are measured as-is.
func DecodedSize(value string) int {
	end := strings.Index(value, marker)
	if !strings.HasPrefix(value, prefix) || end < len(prefix) {
		return len(value)
	}

	payload := value[end+len(marker):]

	return stdBase64.StdEncoding.DecodedLen(len(payload)) - strings.Count(payload[max(0, len(payload)-2):], "=")
}
