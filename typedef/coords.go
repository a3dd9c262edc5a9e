package typedef

// CoordNode is a tagged union over GeoJSON coordinate nesting: either a leaf
// [lon, lat] pair or a list of child nodes. The loader builds these while
// decoding so coordinate walks never have to shape-sniff raw JSON.
type CoordNode struct {
	IsPoint  bool
	Point    [2]float64
	Children []CoordNode
}

// WalkPoints visits every leaf pair under the node using an explicit stack.
func (n CoordNode) WalkPoints(visit func(lon, lat float64)) {
	stack := []CoordNode{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.IsPoint {
			visit(cur.Point[0], cur.Point[1])
			continue
		}
		// Push children in reverse so the walk keeps document order.
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// MeanLat returns the average latitude over all leaf pairs, or 0 when the
// node holds no points.
func (n CoordNode) MeanLat() float64 {
	sum := 0.0
	count := 0
	n.WalkPoints(func(_, lat float64) {
		sum += lat
		count++
	})
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
