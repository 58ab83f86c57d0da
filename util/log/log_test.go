//go:build !release

package log

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	tests := []struct {
		name     string
		fn       func()
		expected string
	}{
		{"Print", func() { Print("crop session opened") }, "crop session opened"},
		{"Printf", func() { Printf("bake %dx%d", 400, 400) }, "bake 400x400"},
		{"Println", func() { Println("surface destroyed") }, "surface destroyed"},
		{"Debug", func() { Debug("frame") }, "[DEBUG] frame"},
		{"Debugf", func() { Debugf("angle %.1f", -5.0) }, "[DEBUG] angle -5.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn()
			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}
