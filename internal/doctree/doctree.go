// Package doctree implements the document tree's node arena: a single
// arena (slice of node records) plus stable indices in place of a
// pointer-rich doubly-linked forest. Every relationship a node carries
// (parent, previous, next, first child, link target) is a NodeID into one
// Tree's node slice rather than a pointer.
package doctree

import "github.com/standardbeagle/xmlman/internal/element"

// NodeID is a stable index into a Tree's node slice; NilNode (-1) means
// "no node".
type NodeID int

// NilNode is the sentinel meaning "no node" wherever a NodeID field would
// otherwise have held a nil pointer. It is -1 rather than the zero value,
// since index 0 is a real node.
const NilNode NodeID = -1

// ChunkFlags are bit flags on a chunk payload.
type ChunkFlags uint8

const (
	FlagLinkExternal ChunkFlags = 1 << iota
	FlagLinkFlatten
)

// ChapterPayload is the per-kind payload for chapter (and index) nodes.
type ChapterPayload struct {
	ID        string // optional declared id
	Processed bool   // placeholder vs populated

	// Mutually exclusive alternatives:
	SourceFile string       // unprocessed placeholder's include filename
	Resources  *Resources   // this chapter/section/index's resource block
	ColumnDefs []ColumnDef  // table-column-definition list (table nodes)
}

// ColumnDef is one <coldef> declaration inside a <table>.
type ColumnDef struct {
	Align string // "left" | "right" | "centre" | "pre"
	Width int    // 0 means "auto"
}

// ChunkPayload is the per-kind payload for inline chunk nodes.
type ChunkPayload struct {
	Flags ChunkFlags

	// target reference: ID string (unresolved) XOR Target (resolved),
	// never set simultaneously.
	TargetID string
	Target   NodeID

	// content: Text XOR Entity.
	Text       []byte
	HasEntity  bool
	EntityKind int // internal/entity.Kind, stored as int to avoid an import cycle risk; see entity.Kind(n)
}

// ModeResource is one <mode name="..."> block: filename, folder, and an
// optional stylesheet for that output mode.
type ModeResource struct {
	Name       string
	Filename   string
	Folder     string
	Stylesheet string
}

// Resources holds the lazily-allocated, mode-specific resource records for
// a chapter/section/index node.
type Resources struct {
	Modes     map[string]*ModeResource
	Images    []string
	Downloads []string
	Summary   string
	Strapline string
	Credit    string
	Version   string
	Date      string
}

// Node is the central polymorphic record.
type Node struct {
	Kind  element.Kind
	Index int // ordinal within siblings of the same kind, 0 when unused

	TitleText string // resolved title text, if any (nil title == "")
	HasTitle  bool

	Parent     NodeID
	FirstChild NodeID
	Previous   NodeID
	Next       NodeID

	Chapter *ChapterPayload // set for chapter/index/section/table nodes
	Chunk   *ChunkPayload   // set for chunk/inline-span/text/entity nodes
}

// Tree is the arena owning every Node in one parsed document.
type Tree struct {
	nodes []Node
	root  NodeID
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{root: NilNode}
}

// NewNode allocates a fresh node of the given kind and returns its stable
// NodeID. The node starts with no parent/siblings/children.
func (t *Tree) NewNode(kind element.Kind) NodeID {
	t.nodes = append(t.nodes, Node{
		Kind:       kind,
		Parent:     NilNode,
		FirstChild: NilNode,
		Previous:   NilNode,
		Next:       NilNode,
	})
	return NodeID(len(t.nodes) - 1)
}

// Node returns a pointer to the node record for id. The pointer is valid
// only until the next NewNode call (the backing slice may reallocate).
func (t *Tree) Node(id NodeID) *Node {
	if id == NilNode {
		return nil
	}
	return &t.nodes[id]
}

// Len returns the number of nodes allocated in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// SetRoot declares id as the document root (the <manual> node).
func (t *Tree) SetRoot(id NodeID) {
	t.root = id
}

// Root returns the document root, or NilNode if the tree is empty.
func (t *Tree) Root() NodeID {
	return t.root
}

// AppendChild links child as the new last child of parent, maintaining the
// doubly-linked sibling chain invariant.
func (t *Tree) AppendChild(parent, child NodeID) {
	p := t.Node(parent)
	c := t.Node(child)
	c.Parent = parent

	if p.FirstChild == NilNode {
		p.FirstChild = child
		return
	}
	last := p.FirstChild
	for {
		n := t.Node(last)
		if n.Next == NilNode {
			break
		}
		last = n.Next
	}
	t.Node(last).Next = child
	c.Previous = last
}

// Children returns every direct child of parent, in sibling order.
func (t *Tree) Children(parent NodeID) []NodeID {
	var out []NodeID
	p := t.Node(parent)
	if p == nil {
		return nil
	}
	for c := p.FirstChild; c != NilNode; c = t.Node(c).Next {
		out = append(out, c)
	}
	return out
}

// EnsureChunk returns node's chunk payload, allocating it on first use with
// Target initialized to NilNode — the zero NodeID value (0) is a legitimate
// node index (the document root is usually node 0), so an unresolved target
// must be initialized explicitly rather than relying on the zero value.
func (t *Tree) EnsureChunk(id NodeID) *ChunkPayload {
	n := t.Node(id)
	if n.Chunk == nil {
		n.Chunk = &ChunkPayload{Target: NilNode}
	}
	return n.Chunk
}

// EnsureResources returns node's resources block, allocating it on first
// use.
func (t *Tree) EnsureResources(id NodeID) *Resources {
	n := t.Node(id)
	if n.Chapter == nil {
		n.Chapter = &ChapterPayload{}
	}
	if n.Chapter.Resources == nil {
		n.Chapter.Resources = &Resources{Modes: make(map[string]*ModeResource)}
	}
	return n.Chapter.Resources
}

// EnsureMode returns the named mode's resource record within node's
// resources block, allocating both on demand.
func (t *Tree) EnsureMode(id NodeID, mode string) *ModeResource {
	res := t.EnsureResources(id)
	if res.Modes == nil {
		res.Modes = make(map[string]*ModeResource)
	}
	m, ok := res.Modes[mode]
	if !ok {
		m = &ModeResource{Name: mode}
		res.Modes[mode] = m
	}
	return m
}
