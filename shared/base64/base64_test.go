package base64_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentwheels/shared/base64"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png car photo", input: "data:image/png;base64,iVBORw0KGgo=", expected: "image/png"},
		{name: "webp car photo", input: "data:image/webp;base64,UklGRg==", expected: "image/webp"},
		{name: "parameters kept", input: "data:image/svg+xml;charset=utf-8;base64,PHN2Zz4=", expected: "image/svg+xml;charset=utf-8"},
		{name: "empty", input: "", expected: ""},
		{name: "missing data prefix", input: "image/png;base64,iVBORw0KGgo=", expected: ""},
		{name: "missing base64 marker", input: "data:image/png,iVBORw0KGgo=", expected: ""},
		{name: "prefix only", input: "data:", expected: ""},
		{name: "empty media type", input: "data:;base64,", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}

func TestDecodedSize(t *testing.T) {
	assert.Equal(t, 11, base64.DecodedSize("data:text/plain;base64,SGVsbG8gV29ybGQ="))
	assert.Equal(t, 3, base64.DecodedSize("data:image/png;base64,AQID"))
	assert.Equal(t, 1, base64.DecodedSize("data:image/png;base64,AQ=="))
	assert.Equal(t, 5, base64.DecodedSize("plain"))
}
