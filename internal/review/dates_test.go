package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{name: "empty", raw: "", ok: false},
		{name: "whitespace", raw: "   ", ok: false},
		{name: "display form", raw: "17/10/2025", want: "17/10/2025", ok: true},
		{name: "display form with time", raw: "17/10/2025 14:03:22", want: "17/10/2025", ok: true},
		{name: "iso timestamp", raw: "2024-11-10T17:00:00Z", want: "10/11/2024", ok: true},
		{name: "iso without zone", raw: "2024-11-10T17:00:00", want: "10/11/2024", ok: true},
		{name: "broken timestamp", raw: "2024-13-45Txyz", ok: false},
		{name: "unknown shape", raw: "ngày 10 tháng 11", ok: false},
		{name: "us style", raw: "11-10-2024", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatDate(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
