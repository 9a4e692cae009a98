package layout

// alloc returns a fresh NodeID, reusing a freed slot when one is available
// so long-lived trees don't grow their backing slice unboundedly under
// repeated split/prune cycles.
func (t *Tree) alloc(n node) NodeID {
	if len(t.freeList) > 0 {
		idx := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		gen := t.nodes[idx].gen + 1
		n.gen = gen
		n.free = false
		t.nodes[idx] = n
		return NodeID{index: int32(idx), gen: gen}
	}
	n.gen = 1
	t.nodes = append(t.nodes, n)
	return NodeID{index: int32(len(t.nodes) - 1), gen: n.gen}
}

// free releases id's slot for reuse. Callers must already have detached id
// from the tree (no remaining parent/child references to it).
func (t *Tree) free(id NodeID) {
	if !t.valid(id) {
		return
	}
	t.nodes[id.index] = node{free: true, gen: t.nodes[id.index].gen}
	t.freeList = append(t.freeList, int(id.index))
}

// valid reports whether id currently names a live node in this tree.
func (t *Tree) valid(id NodeID) bool {
	if !id.Valid() || int(id.index) >= len(t.nodes) {
		return false
	}
	n := &t.nodes[id.index]
	return !n.free && n.gen == id.gen
}

func (t *Tree) at(id NodeID) *node {
	if !t.valid(id) {
		return nil
	}
	return &t.nodes[id.index]
}
