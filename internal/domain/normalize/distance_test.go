package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "exact 500", input: "500", want: "500m", ok: true},
		{name: "noisy 500", input: "523m", want: "500m", ok: true},
		{name: "band edge low", input: "450", want: "500m", ok: true},
		{name: "band edge high", input: "550", want: "500m", ok: true},
		{name: "1000m", input: "1000", want: "1000m", ok: true},
		{name: "1500m", input: "1500 M", want: "1500m", ok: true},
		{name: "3000m individual", input: "3000", want: "3000m", ok: true},
		{name: "3000m relay", input: "3000m relay", want: "3000m relay", ok: true},
		{name: "2000m always relay", input: "2000", want: "2000m relay", ok: true},
		{name: "5000m individual", input: "5000", want: "5000m", ok: true},
		{name: "5000m relay", input: "5000 Relay", want: "5000m relay", ok: true},
		{name: "between bands", input: "2700", ok: false},
		{name: "too short", input: "222", ok: false},
		{name: "no digits", input: "relay", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Distance(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
