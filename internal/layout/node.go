package layout

import (
	"encoding/json"
	"fmt"

	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/wintypes"
)

// Kind tags a Node as either a frame (leaf, holds tabs) or a split
// (internal, divides space between two children).
type Kind int

const (
	KindFrame Kind = iota
	KindSplit
)

// NodeID is a generational handle into a Tree's arena. It stays stable
// across intervening mutations and is only invalidated by the explicit
// removal of the node it names — the arena-allocated analogue of the
// teacher's pointer-based frame tree, chosen so a tree snapshot can be
// handed to the IPC layer as plain data instead of a pointer graph.
type NodeID struct {
	index int32
	gen   uint32
}

// Nil is the invalid handle (index -1). The zero NodeID is not Nil: it
// reports Valid, but gen 0 is never issued to a live node (issuance starts
// gens at 1), so the zero value never aliases a real node.
var Nil = NodeID{index: -1}

// Valid reports whether id was ever issued (it may still be stale).
func (id NodeID) Valid() bool { return id.index >= 0 }

// String renders id as "index:gen", the form used wherever a NodeID needs
// to cross a serialisation boundary (IPC layout snapshots, trace details).
func (id NodeID) String() string {
	if !id.Valid() {
		return "nil"
	}
	return fmt.Sprintf("%d:%d", id.index, id.gen)
}

// MarshalJSON encodes id as its String form so IPC layout snapshots carry
// frame/split identity without exposing the arena index as a bare integer
// a client might mistake for something indexable on their end.
func (id NodeID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

type node struct {
	kind   Kind
	gen    uint32
	free   bool
	parent NodeID

	// Frame fields.
	windows      []wintypes.WindowHandle
	focusedTab   int
	verticalTabs bool

	// Split fields.
	direction geom.SplitType
	ratio     float64
	first     NodeID
	second    NodeID
}

// FrameData is a read-only snapshot of a frame node's contents.
type FrameData struct {
	Windows      []wintypes.WindowHandle
	FocusedTab   int
	VerticalTabs bool
	Parent       NodeID
}

// SplitData is a read-only snapshot of a split node's contents.
type SplitData struct {
	Direction geom.SplitType
	Ratio     float64
	First     NodeID
	Second    NodeID
	Parent    NodeID
}
