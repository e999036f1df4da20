package builder

import "xplain/internal/tree"

// LeafCache is an optional host-level utility for leaf interning
// (§3: "an implementation may intern leaves provided external
// semantics are preserved"). It is never applied automatically by
// Bind or NodeRef — a host opts in explicitly, e.g. when a script
// rebinds the same name=value pair many times in one document.
type LeafCache struct {
	seen map[uint64]*tree.Node
}

func NewLeafCache() *LeafCache {
	return &LeafCache{seen: make(map[uint64]*tree.Node)}
}

// Intern returns a previously-seen node with the same fingerprint, or
// registers and returns n if this is the first time it's been seen.
func (c *LeafCache) Intern(n *tree.Node) *tree.Node {
	fp, err := n.Fingerprint()
	if err != nil {
		return n
	}
	if existing, ok := c.seen[fp]; ok {
		return existing
	}
	c.seen[fp] = n
	return n
}
