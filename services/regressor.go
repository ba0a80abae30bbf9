package services

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	ModelTypeRandomForest = "random_forest_regressor"
	ModelTypeDecisionTree = "decision_tree_regressor"
	ModelTypeLinear       = "linear_regression"
)

var (
	// ErrNotFitted is returned by a model that was saved before training.
	ErrNotFitted = errors.New("model is not fitted")
	// ErrShapeMismatch is returned when a row's width differs from the
	// model's feature count.
	ErrShapeMismatch = errors.New("feature shape mismatch")
)

// Regressor is a loaded, read-only regression model.
type Regressor interface {
	ModelType() string
	// FeatureNames is the ordered schema the model was trained on.
	FeatureNames() ([]string, error)
	// Predict returns one value per row.
	Predict(rows [][]float64) ([]float64, error)
}

// leafMarker is the child index scikit-learn uses for "no child".
const leafMarker = -1

// regressionTree mirrors the array layout of a fitted scikit-learn tree.
type regressionTree struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

func (t *regressionTree) nodeCount() int {
	return len(t.ChildrenLeft)
}

func (t *regressionTree) validate(nFeatures int) error {
	n := t.nodeCount()
	if n == 0 {
		return errors.New("tree has no nodes")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("tree arrays have inconsistent lengths (nodes=%d)", n)
	}
	for i := 0; i < n; i++ {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == leafMarker || right == leafMarker {
			if left != right {
				return fmt.Errorf("node %d has a single child", i)
			}
			continue
		}
		if left <= i || left >= n || right <= i || right >= n {
			return fmt.Errorf("node %d has child index out of range", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d splits on unknown feature %d", i, t.Feature[i])
		}
	}
	return nil
}

// predictRow walks from the root to a leaf. Children always have a larger
// index than their parent (checked by validate), so the walk terminates.
func (t *regressionTree) predictRow(row []float64) float64 {
	node := 0
	for t.ChildrenLeft[node] != leafMarker {
		if row[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

func checkShape(rows [][]float64, nFeatures int) error {
	if len(rows) == 0 {
		return errors.New("no rows to predict")
	}
	for i, row := range rows {
		if len(row) != nFeatures {
			return fmt.Errorf("%w: row %d has %d features, model expects %d", ErrShapeMismatch, i, len(row), nFeatures)
		}
	}
	return nil
}

// forestRegressor averages the output of its trees. A single decision tree is
// a forest of one.
type forestRegressor struct {
	modelType    string
	featureNames []string
	trees        []regressionTree
}

func (f *forestRegressor) ModelType() string { return f.modelType }

func (f *forestRegressor) FeatureNames() ([]string, error) {
	if len(f.trees) == 0 {
		return nil, ErrNotFitted
	}
	return append([]string(nil), f.featureNames...), nil
}

func (f *forestRegressor) Predict(rows [][]float64) ([]float64, error) {
	if len(f.trees) == 0 {
		return nil, ErrNotFitted
	}
	if err := checkShape(rows, len(f.featureNames)); err != nil {
		return nil, err
	}

	out := make([]float64, len(rows))
	votes := make([]float64, len(f.trees))
	for i, row := range rows {
		for j := range f.trees {
			votes[j] = f.trees[j].predictRow(row)
		}
		out[i] = stat.Mean(votes, nil)
	}
	return out, nil
}

type linearRegressor struct {
	featureNames []string
	coef         []float64
	intercept    float64
}

func (l *linearRegressor) ModelType() string { return ModelTypeLinear }

func (l *linearRegressor) FeatureNames() ([]string, error) {
	if len(l.coef) == 0 {
		return nil, ErrNotFitted
	}
	return append([]string(nil), l.featureNames...), nil
}

func (l *linearRegressor) Predict(rows [][]float64) ([]float64, error) {
	if len(l.coef) == 0 {
		return nil, ErrNotFitted
	}
	n := len(l.coef)
	if err := checkShape(rows, n); err != nil {
		return nil, err
	}

	data := make([]float64, 0, len(rows)*n)
	for _, row := range rows {
		data = append(data, row...)
	}
	x := mat.NewDense(len(rows), n, data)

	var y mat.VecDense
	y.MulVec(x, mat.NewVecDense(n, l.coef))

	out := make([]float64, len(rows))
	for i := range out {
		out[i] = y.AtVec(i) + l.intercept
	}
	return out, nil
}
