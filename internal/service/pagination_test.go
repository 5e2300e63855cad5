package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	tests := []struct {
		name string
		page int
		size int
		want int
	}{
		{"first page", 1, 10, 0},
		{"second page", 2, 10, 10},
		{"fifth page of three", 5, 3, 12},
		{"zero page clamps to first", 0, 10, 0},
		{"negative page clamps to first", -3, 10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Offset(tc.page, tc.size))
		})
	}
}
