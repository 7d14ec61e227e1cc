package internal

// ReconstructPath walks predecessor links from current back to start. The
// result starts at current and does not include start. It stops early if a
// node is its own predecessor.
func ReconstructPath[NodeType comparable](
	predecessor func(NodeType) NodeType,
	current NodeType,
	start NodeType,
) []NodeType {
	var path []NodeType
	for current != start {
		path = append(path, current)
		previousNode := predecessor(current)
		if previousNode == current {
			break
		}
		current = previousNode
	}
	return path
}

// Sign returns -1, 0 or +1.
func Sign(value int) int {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	}
	return 0
}

func Abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
