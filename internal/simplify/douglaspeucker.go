// Package simplify reduces polygon boundaries to a target viewing scale
// while keeping them valid GeoJSON rings.
package simplify

// DouglasPeucker drops every point that deviates from the surrounding
// chord by epsilon or less. The result is a subsequence of the input in
// the original order, and the first and last points are always kept.
//
// The threshold checks run over an explicit (start, end) index stack with
// a keep-mask instead of call recursion: municipality boundaries can carry
// tens of thousands of vertices, and near-collinear rings would push plain
// recursion toward the call-depth limit.
func DouglasPeucker(points [][]float64, epsilon float64) [][]float64 {
	if len(points) <= 2 {
		return points
	}

	keep := make([]byte, len(points))
	keep[0] = 1
	keep[len(points)-1] = 1
	kept := 2

	stack := make([]int, 0, 64)
	stack = append(stack, 0, len(points)-1)

	for len(stack) > 0 {
		end := stack[len(stack)-1]
		start := stack[len(stack)-2]

		maxDist := 0.0
		maxIndex := 0
		for i := start + 1; i < end; i++ {
			d := PointSegmentDistance(points[i], points[start], points[end])
			if d > maxDist {
				maxDist = d
				maxIndex = i
			}
		}

		if maxDist > epsilon {
			// The farthest point is structurally significant: keep it and
			// split the range at its index.
			keep[maxIndex] = 1
			kept++
			stack[len(stack)-1] = maxIndex
			stack = append(stack, maxIndex, end)
		} else {
			stack = stack[:len(stack)-2]
		}
	}

	out := make([][]float64, 0, kept)
	for i, k := range keep {
		if k == 1 {
			out = append(out, points[i])
		}
	}

	return out
}
