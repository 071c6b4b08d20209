package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionTitle(t *testing.T) {
	tests := []struct {
		base, body, want string
	}{
		{"Orrery", "Earth", "Orrery - Earth"},
		{"Orrery", "Saturn", "Orrery - Saturn"},
		{"Orrery", "", "Orrery"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, selectionTitle(tc.base, tc.body))
		})
	}
}
