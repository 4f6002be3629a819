package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePerfectMaze(t *testing.T) {
	cases := []struct {
		width, height int
		start         Point
	}{
		{1, 1, Point{}},
		{1, 6, Point{Y: 3}},
		{6, 1, Point{X: 5}},
		{5, 5, Point{}},
		{8, 3, Point{X: 4, Y: 2}},
		{20, 20, Point{X: 19, Y: 19}},
	}
	for _, tc := range cases {
		for seed := int64(1); seed <= 5; seed++ {
			g, err := NewPerfect(tc.width, tc.height, tc.start, rand.New(rand.NewSource(seed)))
			require.NoError(t, err)
			assert.Equal(t, tc.width*tc.height-1, g.OpenPassages())
			assert.NoError(t, Validate(g), "%dx%d seed %d", tc.width, tc.height, seed)
		}
	}
}

func TestGenerateWallsAreSymmetric(t *testing.T) {
	g, err := NewPerfect(7, 9, Point{X: 3, Y: 3}, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := Point{X: x, Y: y}
			for _, d := range Directions {
				n, ok := g.Neighbor(p, d)
				if !ok {
					assert.True(t, g.CellAt(x, y).HasWall(d), "boundary wall %v %v", p, d)
					continue
				}
				assert.Equal(t, g.CellAt(x, y).HasWall(d), g.CellAt(n.X, n.Y).HasWall(d.Opposite()))
			}
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a, err := NewPerfect(10, 10, Point{}, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := NewPerfect(10, 10, Point{}, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, a.cells, b.cells)

	c, err := NewPerfect(10, 10, Point{}, rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	assert.NotEqual(t, a.cells, c.cells)
}

func TestGenerateMatchesRecursiveCarve(t *testing.T) {
	iterative, err := NewPerfect(12, 9, Point{X: 2, Y: 5}, rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	recursive, err := New(12, 9)
	require.NoError(t, err)
	visited := make([]bool, recursive.Size())
	rng := rand.New(rand.NewSource(99))
	var carve func(p Point)
	carve = func(p Point) {
		visited[recursive.Index(p)] = true
		dirs := Directions
		rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
		for _, d := range dirs {
			n, ok := recursive.Neighbor(p, d)
			if !ok || visited[recursive.Index(n)] {
				continue
			}
			recursive.removeWall(p, d)
			carve(n)
		}
	}
	carve(Point{X: 2, Y: 5})

	assert.Equal(t, recursive.cells, iterative.cells)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g, err := New(3, 3)
	require.NoError(t, err)

	err = Generate(g, Point{X: 3, Y: 0}, rng)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	require.NoError(t, Generate(g, Point{}, rng))
	err = Generate(g, Point{}, rng)
	assert.ErrorIs(t, err, ErrAlreadyCarved)
}
