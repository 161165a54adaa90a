package xgboost

import (
	"errors"
	"fmt"
)

// compileTree flattens a nested dump into a slice with the root at 0 and
// resolves yes/no/missing node ids to slice positions.
func compileTree(root *Node, index map[string]int) (tree, error) {
	byID := make(map[int]*Node)
	var collect func(n *Node) error
	collect = func(n *Node) error {
		if _, dup := byID[n.NodeID]; dup {
			return fmt.Errorf("duplicate nodeid %d", n.NodeID)
		}
		byID[n.NodeID] = n
		for i := range n.Children {
			if err := collect(&n.Children[i]); err != nil {
				return err
			}
		}
		return nil
	}
	if err := collect(root); err != nil {
		return nil, err
	}

	pos := make(map[int]int, len(byID))
	order := make([]*Node, 0, len(byID))
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		pos[n.NodeID] = len(order)
		order = append(order, n)
		for i := range n.Children {
			queue = append(queue, &n.Children[i])
		}
	}

	t := make(tree, len(order))
	for i, n := range order {
		if n.Leaf != nil {
			if len(n.Children) > 0 {
				return nil, fmt.Errorf("node %d is a leaf with children", n.NodeID)
			}
			t[i] = flatNode{leaf: true, value: *n.Leaf}
			continue
		}
		if n.Split == "" {
			return nil, fmt.Errorf("node %d has neither split nor leaf", n.NodeID)
		}
		feature, err := resolveFeature(n.Split, index)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", n.NodeID, err)
		}
		yes, okYes := pos[n.Yes]
		no, okNo := pos[n.No]
		missing, okMissing := pos[n.Missing]
		if !okYes || !okNo || !okMissing {
			return nil, fmt.Errorf("node %d: branch target not found", n.NodeID)
		}
		if !isChild(n, n.Yes) || !isChild(n, n.No) || !isChild(n, n.Missing) {
			return nil, errors.New("branch target is not a direct child")
		}
		t[i] = flatNode{
			feature:   feature,
			threshold: float32(n.SplitCondition),
			yes:       yes,
			no:        no,
			missing:   missing,
		}
	}
	return t, nil
}

func isChild(n *Node, id int) bool {
	for i := range n.Children {
		if n.Children[i].NodeID == id {
			return true
		}
	}
	return false
}
