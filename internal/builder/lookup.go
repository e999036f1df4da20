package builder

import (
	"sort"

	"xplain/internal/tree"
	"xplain/internal/value"
	"xplain/internal/xerrors"
)

// Lookup constructs a Node reading m[key]: its operands are the key
// leaf and the found value leaf, and its CaseLabels record every
// candidate key m held so the Renderer and Simplifier can see what
// wasn't chosen (§4.7). Missing keys fail with KeyNotFound.
func Lookup(m map[string]value.Value, key string) (*tree.Node, error) {
	v, ok := m[key]
	if !ok {
		return nil, xerrors.KeyNotFound.New(key)
	}
	keyNode := tree.NewLeaf("key", true, value.Str(key))
	valueNode := tree.NewLeaf(key, true, v)
	labels := &tree.CaseLabels{
		Keys:        sortedKeys(m),
		SelectedKey: value.Str(key),
	}
	return tree.NewWithCase(tree.Lookup, v, []*tree.Node{keyNode, valueNode}, labels), nil
}

// UncertainLookup is Lookup except a missing key yields def instead of
// failing; CaseLabels.DefaultTaken records which happened.
func UncertainLookup(m map[string]value.Value, key string, def value.Value) (*tree.Node, error) {
	v, ok := m[key]
	defaultTaken := !ok
	if !ok {
		v = def
	}
	keyNode := tree.NewLeaf("key", true, value.Str(key))
	valueNode := tree.NewLeaf(key, true, v)
	labels := &tree.CaseLabels{
		Keys:         sortedKeys(m),
		SelectedKey:  value.Str(key),
		DefaultTaken: defaultTaken,
	}
	return tree.NewWithCase(tree.UncertainLookup, v, []*tree.Node{keyNode, valueNode}, labels), nil
}

func sortedKeys(m map[string]value.Value) []value.Value {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = value.Str(k)
	}
	return out
}
