package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	offset, limit := Paginate(1)
	assert.Equal(t, 0, offset)
	assert.Equal(t, PerPage, limit)

	offset, _ = Paginate(3)
	assert.Equal(t, 2*PerPage, offset)

	// Pages below one clamp to the first page
	offset, _ = Paginate(0)
	assert.Equal(t, 0, offset)
	offset, _ = Paginate(-5)
	assert.Equal(t, 0, offset)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0))
	assert.Equal(t, 1, TotalPages(1))
	assert.Equal(t, 1, TotalPages(10))
	assert.Equal(t, 2, TotalPages(11))
	assert.Equal(t, 2, TotalPages(20))
	assert.Equal(t, 3, TotalPages(21))
}
