package doupinpin

import "image"

// gridOffsets are the 4-connected neighbor offsets shared by the
// background fill and the region merge.
var gridOffsets = [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

// floodFill walks a w x h grid breadth-first from the seed points and
// returns the visited cells in discovery order along with the visited
// mask, indexed y*w+x. A cell joins the region when accept reports
// true for it; seeds must pass accept too. Out-of-range seeds are
// ignored.
func floodFill(w, h int, seeds []image.Point, accept func(x, y int) bool) ([]image.Point, []bool) {
	visited := make([]bool, w*h)
	var cells []image.Point

	queue := make([]image.Point, 0, len(seeds))
	for _, s := range seeds {
		if s.X < 0 || s.X >= w || s.Y < 0 || s.Y >= h {
			continue
		}
		idx := s.Y*w + s.X
		if visited[idx] || !accept(s.X, s.Y) {
			continue
		}
		visited[idx] = true
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		cells = append(cells, p)

		for _, off := range gridOffsets {
			nx, ny := p.X+off[0], p.Y+off[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			idx := ny*w + nx
			if visited[idx] || !accept(nx, ny) {
				continue
			}
			visited[idx] = true
			queue = append(queue, image.Point{X: nx, Y: ny})
		}
	}

	return cells, visited
}
