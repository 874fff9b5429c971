package resolver

// TopologicalOrder orders the nodes of a parent→children adjacency so that
// every node appears after all of its ancestors. Nodes and children are
// visited in sorted order so the result is stable for a given graph.
// Cyclic input has no defined order.
func TopologicalOrder(children map[string]NameSet) []string {
	seen := make(map[string]bool, len(children))
	postorder := make([]string, 0, len(children))

	var visit func(node string)
	visit = func(node string) {
		seen[node] = true
		for _, child := range children[node].Sorted() {
			if !seen[child] {
				visit(child)
			}
		}
		postorder = append(postorder, node)
	}

	for _, node := range sortedKeys(children) {
		if !seen[node] {
			visit(node)
		}
	}

	// Prepending each finished node equals reversing the postorder.
	order := make([]string, len(postorder))
	for i, node := range postorder {
		order[len(postorder)-1-i] = node
	}
	return order
}

// DescendantClosure computes, for every node, the transitive set of its
// descendants. Each node is expanded once and its result reused by every
// parent that reaches it.
func DescendantClosure(children map[string]NameSet) map[string]NameSet {
	closure := make(map[string]NameSet, len(children))
	seen := make(map[string]bool, len(children))

	var visit func(node string)
	visit = func(node string) {
		seen[node] = true
		desc := NameSet{}
		closure[node] = desc
		for _, child := range children[node].Sorted() {
			desc.Add(child)
			if !seen[child] {
				visit(child)
			}
			desc.AddAll(closure[child])
		}
	}

	for _, node := range sortedKeys(children) {
		if !seen[node] {
			visit(node)
		}
	}
	return closure
}

func sortedKeys(m map[string]NameSet) []string {
	keys := make(NameSet, len(m))
	for k := range m {
		keys.Add(k)
	}
	return keys.Sorted()
}
