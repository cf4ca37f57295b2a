package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionDelta(t *testing.T) {
	cases := map[Direction][2]int64{
		Left:  {-1, 0},
		Right: {1, 0},
		Up:    {0, 1},
		Down:  {0, -1},
	}
	for dir, want := range cases {
		dx, dy := dir.Delta()
		assert.Equal(t, want, [2]int64{dx, dy}, dir.String())
	}
}
