package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New(3, 1)
	s.Add(2)
	assert.True(t, s.Has(2))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{1, 2, 3}, Sorted(s))

	assert.True(t, s.Delete(1))
	assert.False(t, s.Delete(1))
	assert.False(t, s.Has(1))
}
