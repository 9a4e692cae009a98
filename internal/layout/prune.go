package layout

// pruneFrame collapses an emptied frame out of the tree. It is called after
// a frame's last window is removed.
//
//  1. If the frame is empty and is the root, it is kept.
//  2. Otherwise the frame is removed from its parent split S, which now has
//     one remaining child C. S is replaced by C in S's parent (or as the
//     new root), and S is deleted.
//  3. Pruning never deletes a non-empty frame (the caller only invokes this
//     once a frame's window list has already reached zero).
func (t *Tree) pruneFrame(id NodeID) {
	n := t.at(id)
	if n == nil || n.kind != KindFrame {
		return
	}
	if id == t.root {
		return
	}
	split := n.parent
	sn := t.at(split)
	if sn == nil {
		return
	}

	var sibling NodeID
	if sn.first == id {
		sibling = sn.second
	} else {
		sibling = sn.first
	}

	grandparent := sn.parent
	if grandparent.Valid() {
		gn := t.at(grandparent)
		if gn.first == split {
			gn.first = sibling
		} else {
			gn.second = sibling
		}
	} else {
		t.root = sibling
	}
	if sib := t.at(sibling); sib != nil {
		sib.parent = grandparent
	}

	wasFocused := t.focused == id
	t.free(split)
	t.free(id)

	if wasFocused {
		t.focused = t.firstInOrderFrame(sibling)
	}
}

// firstInOrderFrame descends via first-children until it reaches a frame,
// giving the left-most frame of the subtree rooted at id — used to recover
// focus after the previously focused frame is pruned away.
func (t *Tree) firstInOrderFrame(id NodeID) NodeID {
	cur := id
	for {
		n := t.at(cur)
		if n == nil {
			return Nil
		}
		if n.kind == KindFrame {
			return cur
		}
		cur = n.first
	}
}
