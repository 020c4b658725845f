package scoring

import (
	"fmt"
	"math"
)

// Regressor is the scoring function behind the adapter.
type Regressor interface {
	Predict(x []float64) (float64, error)
}

// Node is one node of a regression tree. Internal nodes send x[Feature] < Threshold
// to Left; NaN goes left only when MissingLeft is set.
type Node struct {
	Feature     int     `yaml:"feature"`
	Threshold   float64 `yaml:"threshold"`
	Left        int     `yaml:"left"`
	Right       int     `yaml:"right"`
	MissingLeft bool    `yaml:"missing_left"`
	Leaf        bool    `yaml:"leaf"`
	Value       float64 `yaml:"value"`
}

// Tree is a flattened regression tree rooted at Nodes[0].
type Tree struct {
	Nodes []Node `yaml:"nodes"`
}

// Ensemble is a gradient-boosted sum of trees over Baseline.
type Ensemble struct {
	Baseline float64 `yaml:"baseline"`
	Trees    []Tree  `yaml:"trees"`

	width int
}

func (e *Ensemble) prepare(width int) error {
	if len(e.Trees) == 0 {
		return fmt.Errorf("model: no trees")
	}
	for t, tree := range e.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("model: tree %d is empty", t)
		}
		for i, n := range tree.Nodes {
			if n.Leaf {
				continue
			}
			if n.Feature < 0 || n.Feature >= width {
				return fmt.Errorf("model: tree %d node %d uses feature %d of %d", t, i, n.Feature, width)
			}
			// children after their parent rule out cycles
			if n.Left <= i || n.Left >= len(tree.Nodes) || n.Right <= i || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("model: tree %d node %d has invalid children %d/%d", t, i, n.Left, n.Right)
			}
		}
	}
	e.width = width
	return nil
}

// Predict returns the raw ensemble output for one feature vector.
func (e *Ensemble) Predict(x []float64) (float64, error) {
	if len(x) != e.width {
		return 0, fmt.Errorf("model: got %d features, want %d", len(x), e.width)
	}
	sum := e.Baseline
	for _, tree := range e.Trees {
		sum += tree.eval(x)
	}
	return sum, nil
}

func (t Tree) eval(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		v := x[n.Feature]
		switch {
		case math.IsNaN(v):
			if n.MissingLeft {
				i = n.Left
			} else {
				i = n.Right
			}
		case v < n.Threshold:
			i = n.Left
		default:
			i = n.Right
		}
	}
}
