package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLCSLength(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{"both empty", "", "", 0},
		{"one empty", "a b c", "", 0},
		{"identical", "a b c", "a b c", 3},
		{"subsequence", "a b c d", "a c", 2},
		{"interleaved", "a x b y c", "a b c", 3},
		{"no overlap", "a b c", "x y z", 0},
		{"shorter first argument", "a c", "a b c d", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lcsLength(strings.Fields(tt.a), strings.Fields(tt.b))
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSequenceRatio(t *testing.T) {
	t.Run("both empty sequences are identical", func(t *testing.T) {
		assert.Equal(t, 1.0, SequenceRatio(nil, nil))
	})

	t.Run("one empty sequence matches nothing", func(t *testing.T) {
		assert.Equal(t, 0.0, SequenceRatio([]string{"a"}, nil))
		assert.Equal(t, 0.0, SequenceRatio(nil, []string{"a"}))
	})

	t.Run("identical sequences", func(t *testing.T) {
		seq := []string{"If", "Block", "Return"}
		assert.Equal(t, 1.0, SequenceRatio(seq, seq))
	})

	t.Run("partial overlap", func(t *testing.T) {
		a := []string{"a", "b", "c", "d"}
		b := []string{"a", "c"}
		// LCS = 2, ratio = 2*2/(4+2)
		assert.InDelta(t, 2.0/3.0, SequenceRatio(a, b), 1e-9)
	})

	t.Run("symmetry", func(t *testing.T) {
		a := []string{"a", "x", "b", "y"}
		b := []string{"a", "b", "z"}
		assert.Equal(t, SequenceRatio(a, b), SequenceRatio(b, a))
	})

	t.Run("result stays in unit interval", func(t *testing.T) {
		a := []string{"a", "a", "a"}
		b := []string{"a"}
		ratio := SequenceRatio(a, b)
		assert.GreaterOrEqual(t, ratio, 0.0)
		assert.LessOrEqual(t, ratio, 1.0)
	})
}

func TestLCSPairs(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, lcsPairs(nil, []string{"a"}))
	})

	t.Run("identical sequences align index to index", func(t *testing.T) {
		seq := []string{"x", "y", "z"}
		pairs := lcsPairs(seq, seq)
		assert.Equal(t, [][2]int{{0, 0}, {1, 1}, {2, 2}}, pairs)
	})

	t.Run("offset match", func(t *testing.T) {
		a := []string{"p", "q", "r"}
		b := []string{"header", "p", "q", "r"}
		pairs := lcsPairs(a, b)
		assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {2, 3}}, pairs)
	})

	t.Run("pairs are ascending on both sides", func(t *testing.T) {
		a := []string{"a", "b", "c", "d", "e"}
		b := []string{"c", "a", "d", "b", "e"}
		pairs := lcsPairs(a, b)
		for i := 1; i < len(pairs); i++ {
			assert.Greater(t, pairs[i][0], pairs[i-1][0])
			assert.Greater(t, pairs[i][1], pairs[i-1][1])
		}
	})
}
