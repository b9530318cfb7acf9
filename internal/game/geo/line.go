package geo

// Cell is a grid cell index.
type Cell struct {
	X, Y, Z int32
}

// lineWalk steps through grid cells along a 3D Bresenham line, start and end
// cells included.
type lineWalk struct {
	cur, end Cell
	delta    [3]int32
	step     [3]int32
	err      [2]int32
	major    int // index of the dominant axis
	started  bool
}

func newLineWalk(from, to Cell) *lineWalk {
	w := &lineWalk{cur: from, end: to}

	f, t := from.axes(), to.axes()
	for i := range 3 {
		w.delta[i] = abs32(t[i] - f[i])
		w.step[i] = 1
		if t[i] < f[i] {
			w.step[i] = -1
		}
	}

	switch {
	case w.delta[0] >= w.delta[1] && w.delta[0] >= w.delta[2]:
		w.major = 0
	case w.delta[1] >= w.delta[2]:
		w.major = 1
	default:
		w.major = 2
	}
	w.err[0] = w.delta[w.major] / 2
	w.err[1] = w.err[0]
	return w
}

// Next moves to the next cell. The first call yields the start cell.
func (w *lineWalk) Next() bool {
	if !w.started {
		w.started = true
		return true
	}
	if w.cur == w.end {
		return false
	}

	c := w.cur.axes()
	c[w.major] += w.step[w.major]

	minor := w.minorAxes()
	for i, ax := range minor {
		w.err[i] += w.delta[ax]
		if w.err[i] >= w.delta[w.major] {
			c[ax] += w.step[ax]
			w.err[i] -= w.delta[w.major]
		}
	}

	w.cur = Cell{c[0], c[1], c[2]}
	return true
}

// Cell returns the current cell.
func (w *lineWalk) Cell() Cell { return w.cur }

func (w *lineWalk) minorAxes() [2]int {
	switch w.major {
	case 0:
		return [2]int{1, 2}
	case 1:
		return [2]int{0, 2}
	default:
		return [2]int{0, 1}
	}
}

func (c Cell) axes() [3]int32 { return [3]int32{c.X, c.Y, c.Z} }

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
