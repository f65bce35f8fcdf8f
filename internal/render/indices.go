package render

// MaxIndexedVertices is the most unique vertices a 16-bit index buffer can
// address.
const MaxIndexedVertices = 1 << 16

// Index16 rebases src by base and renumbers the referenced vertices
// densely, in first-use order. order lists the level vertex behind every new
// index. When src references more than MaxIndexedVertices distinct vertices,
// indices is nil and order is src rebased, one vertex per index, to be drawn
// as a plain triangle list.
func Index16(src []uint32, base uint32) (order []uint32, indices []uint16) {
	remap := make(map[uint32]uint16)
	indices = make([]uint16, 0, len(src))
	for _, ix := range src {
		v := base + ix
		n, ok := remap[v]
		if !ok {
			if len(order) == MaxIndexedVertices {
				return expand(src, base), nil
			}
			n = uint16(len(order))
			remap[v] = n
			order = append(order, v)
		}
		indices = append(indices, n)
	}
	return order, indices
}

func expand(src []uint32, base uint32) []uint32 {
	order := make([]uint32, len(src))
	for i, ix := range src {
		order[i] = base + ix
	}
	return order
}
