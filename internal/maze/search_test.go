package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortestPathFollowsPassages(t *testing.T) {
	g, err := NewPerfect(8, 8, Point{}, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	from, to := Point{}, Point{X: 7, Y: 7}
	path, ok := ShortestPath(g, from, to)
	require.True(t, ok)
	assert.Equal(t, from, path[0])
	assert.Equal(t, to, path[len(path)-1])

	seen := make(map[Point]bool)
	for i, p := range path {
		assert.False(t, seen[p], "revisited %v", p)
		seen[p] = true
		if i == 0 {
			continue
		}
		assert.True(t, adjacentOpen(g, path[i-1], p), "%v -> %v crosses a wall", path[i-1], p)
	}
}

func TestShortestPathEdgeCases(t *testing.T) {
	g, err := NewPerfect(3, 3, Point{}, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	path, ok := ShortestPath(g, Point{X: 1, Y: 1}, Point{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, []Point{{X: 1, Y: 1}}, path)

	_, ok = ShortestPath(g, Point{}, Point{X: 3, Y: 0})
	assert.False(t, ok)

	walled, err := New(2, 2)
	require.NoError(t, err)
	_, ok = ShortestPath(walled, Point{}, Point{X: 1, Y: 1})
	assert.False(t, ok)
}

func adjacentOpen(g *Grid, a, b Point) bool {
	for _, d := range Directions {
		if a.Add(d) == b {
			return g.CanMove(a, d)
		}
	}
	return false
}
