package convex

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// cellKey is the integer coordinate of a grid cell.
type cellKey struct {
	X, Y, Z int
}

// weldGrid is a hashed uniform grid over welded vertex positions. Cells are
// as wide as the weld distance, so any vertex close enough to merge lies in
// one of the 27 cells around the query.
type weldGrid struct {
	cellSize float64
	radiusSq float64
	cells    [][]int
	cellMask int
}

func newWeldGrid(radius float64, numCells int) *weldGrid {
	numCells = nextPowerOfTwo(numCells)

	return &weldGrid{
		cellSize: radius,
		radiusSq: radius * radius,
		cells:    make([][]int, numCells),
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo rounds n up to a power of two.
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// insert records that positions[index] lives at p.
func (g *weldGrid) insert(index int, p mgl64.Vec3) {
	cell := g.hashCell(g.worldToCell(p))
	g.cells[cell] = append(g.cells[cell], index)
}

// find returns the lowest index whose position lies strictly closer than the
// weld distance to p, or -1.
func (g *weldGrid) find(p mgl64.Vec3, positions []mgl64.Vec3) int {
	center := g.worldToCell(p)
	found := -1

	for x := center.X - 1; x <= center.X+1; x++ {
		for y := center.Y - 1; y <= center.Y+1; y++ {
			for z := center.Z - 1; z <= center.Z+1; z++ {
				for _, idx := range g.cells[g.hashCell(cellKey{x, y, z})] {
					if found >= 0 && idx >= found {
						continue
					}
					d := positions[idx].Sub(p)
					if d.Dot(d) < g.radiusSq {
						found = idx
					}
				}
			}
		}
	}

	return found
}

func (g *weldGrid) worldToCell(pos mgl64.Vec3) cellKey {
	return cellKey{
		X: int(math.Floor(pos.X() / g.cellSize)),
		Y: int(math.Floor(pos.Y() / g.cellSize)),
		Z: int(math.Floor(pos.Z() / g.cellSize)),
	}
}

func (g *weldGrid) hashCell(key cellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & g.cellMask
}
