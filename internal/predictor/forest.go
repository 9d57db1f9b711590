package predictor

import (
	"fmt"

	"github.com/harentsoaR/diabetes-api/internal/models"
)

type node struct {
	Leaf      bool    `json:"leaf"`
	Value     int     `json:"value"`
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
}

type tree struct {
	Nodes []node `json:"nodes"`
}

// forest votes its trees; a strict majority of positive votes gives 1.
type forest struct {
	trees []tree
}

func newForest(trees []tree) (*forest, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("forest model has no trees")
	}
	for i, t := range trees {
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &forest{trees: trees}, nil
}

// validate requires children to come after their parent, which rules out
// cycles and guarantees evaluation terminates.
func (t tree) validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			if n.Value != models.ResultHealthy && n.Value != models.ResultDiabetic {
				return fmt.Errorf("node %d: leaf value %d is not 0 or 1", i, n.Value)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= len(FeatureNames) {
			return fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: children (%d, %d) must follow the node", i, n.Left, n.Right)
		}
	}
	return nil
}

// eval walks left when x[feature] <= threshold.
func (t tree) eval(x []float64) int {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func (f *forest) classify(x []float64) int {
	votes := 0
	for _, t := range f.trees {
		votes += t.eval(x)
	}
	if 2*votes > len(f.trees) {
		return models.ResultDiabetic
	}
	return models.ResultHealthy
}
