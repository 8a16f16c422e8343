package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, size           int
		wantOffset, wantSize int
	}{
		{page: 1, size: 10, wantOffset: 0, wantSize: 10},
		{page: 3, size: 10, wantOffset: 20, wantSize: 10},
		{page: 0, size: 0, wantOffset: 0, wantSize: DefaultPageSize},
		{page: 2, size: 1000, wantOffset: MaxPageSize, wantSize: MaxPageSize},
	}
	for _, tt := range tests {
		offset, limit := Calculate(tt.page, tt.size)
		assert.Equal(t, tt.wantOffset, offset)
		assert.Equal(t, tt.wantSize, limit)
	}
}

func TestNewMeta(t *testing.T) {
	t.Parallel()

	m := NewMeta(2, 10, 10, 25)
	assert.Equal(t, int64(3), m.TotalPages)
	assert.True(t, m.HasPrev)
	assert.True(t, m.HasNext)

	last := NewMeta(3, 20, 10, 25)
	assert.False(t, last.HasNext)
	assert.Equal(t, 7, ParseIntDefault("7", 1))
	assert.Equal(t, 1, ParseIntDefault("x", 1))
}
