package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "minutes and seconds", input: "1:27.792", want: 87.792, ok: true},
		{name: "seconds only", input: "42.245", want: 42.245, ok: true},
		{name: "whole seconds", input: "42", want: 42, ok: true},
		{name: "leading whitespace", input: "  45.100 ", want: 45.1, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "whitespace only", input: "   ", ok: false},
		{name: "not a time", input: "abc", ok: false},
		{name: "three colon parts", input: "1:2:3", ok: false},
		{name: "non numeric minutes", input: "x:30.000", ok: false},
		{name: "non numeric seconds", input: "1:xx.000", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSeconds(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.0001)
			}
		})
	}
}

func TestTime(t *testing.T) {
	assert.Equal(t, "DNF", Time("dnf"))
	assert.Equal(t, "DNS", Time("DNS"))
	assert.Equal(t, "42.245", Time("42.245"))
	assert.Equal(t, "1:27.792", Time(" 1:27.792 "))
	assert.Equal(t, "", Time(""))
}

func TestCleanTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "minutes format passes", input: "1:27.792", want: "1:27.792", ok: true},
		{name: "seconds widened", input: "44.100", want: "0:44.100", ok: true},
		{name: "zero clock rejected", input: "0:00.000", ok: false},
		{name: "too fast rejected", input: "12.345", ok: false},
		{name: "dnf rejected", input: "DNF", ok: false},
		{name: "dash rejected", input: "-", ok: false},
		{name: "empty rejected", input: "", ok: false},
		{name: "garbage rejected", input: "n/a", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanTime(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsStatusCode(t *testing.T) {
	assert.True(t, IsStatusCode("DNS"))
	assert.True(t, IsStatusCode("dq"))
	assert.True(t, IsStatusCode("PEN 2"))
	assert.False(t, IsStatusCode("42.245"))
}
