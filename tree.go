package comb2

// This file implements the provisional parse tree recorder and its
// collection into a user-visible node tree, grounded on
// tree/branch_table.h. A parent back-link is modeled as an explicit stack
// of node handles rather than a weak pointer, a plain substitute for the
// shared_ptr/weak_ptr original.

type elementKind int

const (
	elementBranch elementKind = iota
	elementGroup
	elementIdent
)

// provisionalNode is a node of the in-progress (possibly-to-be-discarded)
// parse tree. Branch nodes are anonymous structural frames created by
// logic combinators; Group nodes are tagged structural captures; Ident
// nodes are tagged leaves holding a captured substring.
type provisionalNode struct {
	kind     elementKind
	tag      any
	pos      Pos
	ident    string
	children []*provisionalNode
}

// BranchTable is the canonical Context implementation driving tree
// construction: it implements GroupHooks, StringHooks, and LogicHooks.
type BranchTable struct {
	root    *provisionalNode
	stack   []*provisionalNode // stack[len-1] is "current_branch"
	strCount int
	// LexerMode suppresses materializing anonymous logic frames, keeping
	// only groups and captures in the committed tree.
	LexerMode bool
}

func (bt *BranchTable) maybeInit() {
	if bt.root == nil {
		bt.root = &provisionalNode{kind: elementBranch}
		bt.stack = []*provisionalNode{bt.root}
	}
}

func (bt *BranchTable) current() *provisionalNode {
	bt.maybeInit()
	return bt.stack[len(bt.stack)-1]
}

func (bt *BranchTable) push(n *provisionalNode) {
	cur := bt.current()
	cur.children = append(cur.children, n)
	bt.stack = append(bt.stack, n)
}

func (bt *BranchTable) pop() *provisionalNode {
	n := bt.stack[len(bt.stack)-1]
	bt.stack = bt.stack[:len(bt.stack)-1]
	return n
}

func (bt *BranchTable) discardLastChild() {
	parent := bt.current()
	parent.children = parent.children[:len(parent.children)-1]
}

// BeginGroup implements GroupHooks.
func (bt *BranchTable) BeginGroup(tag any) {
	if bt.strCount > 0 {
		return
	}
	bt.push(&provisionalNode{kind: elementGroup, tag: tag})
}

// EndGroup implements GroupHooks.
func (bt *BranchTable) EndGroup(status Status, tag any, pos Pos) {
	if bt.strCount > 0 {
		return
	}
	n := bt.pop()
	n.pos = pos
	if status == NotMatch {
		bt.discardLastChild()
	}
}

// BeginString implements StringHooks.
func (bt *BranchTable) BeginString(tag any) {
	bt.strCount++
}

// EndString implements StringHooks.
func (bt *BranchTable) EndString(status Status, tag any, seq *Sequencer, pos Pos) Status {
	bt.strCount--
	if bt.strCount > 0 {
		return status
	}
	if status != Match {
		return status
	}
	n := &provisionalNode{kind: elementIdent, tag: tag, pos: pos}
	if pos != NoPos {
		n.ident = seq.ReadAt(pos.Begin, pos.Len())
	}
	bt.maybeInit()
	cur := bt.current()
	cur.children = append(cur.children, n)
	return status
}

// LogicEntry implements LogicHooks. PeekBegin bumps the string-suppression
// semaphore rather than pushing a branch, matching branch_table.h's literal
// treatment of CallbackType::peek_begin inside logic_entry. RepeatStep is a
// per-iteration marker with no paired LogicResult, so it pushes nothing.
func (bt *BranchTable) LogicEntry(kind CallbackKind) {
	if kind == PeekBegin {
		bt.strCount++
		return
	}
	if kind == RepeatStep {
		return
	}
	if bt.strCount > 0 {
		return
	}
	if bt.LexerMode {
		return
	}
	bt.push(&provisionalNode{kind: elementBranch})
}

// LogicResult implements LogicHooks.
func (bt *BranchTable) LogicResult(kind CallbackKind, status Status) {
	if kind == PeekEnd {
		bt.strCount--
		return
	}
	if bt.strCount > 0 {
		return
	}
	if bt.LexerMode {
		return
	}
	bt.pop()
	if status == NotMatch {
		bt.discardLastChild()
	}
}

// Root returns the provisional root, initializing it if this table has
// never observed a hook call (an empty parse still has a root Branch).
func (bt *BranchTable) Root() *provisionalNode {
	bt.maybeInit()
	return bt.root
}

// Token is a collected leaf: a tagged capture of a matched substring.
type Token struct {
	Tag  any
	Text string
	Pos  Pos
}

// GroupNode is a collected structural node: a tagged capture with ordered
// children, each either a Token or a nested GroupNode.
type GroupNode struct {
	Tag      any
	Pos      Pos
	Children []any // each element is Token or *GroupNode
}

// Collect performs a post-order walk producing the collected node tree:
// idents become Tokens, groups become GroupNodes, and anonymous Branch
// frames are flattened into their parent's child list.
func Collect(root *provisionalNode) *GroupNode {
	g := &GroupNode{Tag: nil, Pos: NoPos}
	g.Children = collectChildren(root)
	return g
}

func collectChildren(n *provisionalNode) []any {
	var out []any
	for _, c := range n.children {
		switch c.kind {
		case elementIdent:
			out = append(out, Token{Tag: c.tag, Text: c.ident, Pos: c.pos})
		case elementGroup:
			out = append(out, &GroupNode{Tag: c.tag, Pos: c.pos, Children: collectChildren(c)})
		case elementBranch:
			out = append(out, collectChildren(c)...)
		}
	}
	return out
}

// VisitFunc is called once on enter (enter=true) and once on leave
// (enter=false) for every GroupNode visited by VisitNodes, or, for
// VisitNodesRaw, additionally for anonymous Branch frames represented as a
// *GroupNode with a nil Tag. A Token gets only the enter call.
type VisitFunc func(node any, enter bool)

// VisitNodes walks a collected tree exactly as Collect would build it,
// without building an intermediate slice; Branch frames are transparent.
func VisitNodes(root *provisionalNode, cb VisitFunc) {
	visitNodes(root, cb)
}

func visitNodes(n *provisionalNode, cb VisitFunc) {
	for _, c := range n.children {
		switch c.kind {
		case elementIdent:
			cb(Token{Tag: c.tag, Text: c.ident, Pos: c.pos}, true)
		case elementGroup:
			g := &GroupNode{Tag: c.tag, Pos: c.pos, Children: collectChildren(c)}
			cb(g, true)
			visitNodes(c, cb)
			cb(g, false)
		case elementBranch:
			visitNodes(c, cb)
		}
	}
}

// VisitNodesRaw is VisitNodes but also exposes anonymous Branch frames (for
// debugging), matching the source's separate visit_nodes_raw.
func VisitNodesRaw(n *provisionalNode, cb VisitFunc) {
	for _, c := range n.children {
		switch c.kind {
		case elementIdent:
			cb(Token{Tag: c.tag, Text: c.ident, Pos: c.pos}, true)
		case elementGroup:
			g := &GroupNode{Tag: c.tag, Pos: c.pos, Children: collectChildren(c)}
			cb(g, true)
			VisitNodesRaw(c, cb)
			cb(g, false)
		case elementBranch:
			g := &GroupNode{Tag: nil, Pos: NoPos, Children: collectChildren(c)}
			cb(g, true)
			VisitNodesRaw(c, cb)
			cb(g, false)
		}
	}
}
