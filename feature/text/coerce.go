package text

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/scitext/scitext/pkg/errors"
)

// ToCSC coerces a recognized matrix representation into the canonical
// compressed sparse column form. The accepted set is closed: the sparse
// family (CSC, CSR, COO, DOK and anything else implementing
// sparse.TypeConverter) and dense gonum matrices. A *sparse.CSC input is
// returned as-is without copying.
//
// Dense inputs are converted cell by cell, skipping zeros, and a
// DataConversionWarning is emitted through the warning system since the
// conversion cost is easy to miss in a pipeline.
//
// Unrecognized types fail with a ValueError rather than being guessed at
// through the generic mat.Matrix interface.
func ToCSC(X mat.Matrix) (*sparse.CSC, error) {
	switch m := X.(type) {
	case *sparse.CSC:
		return m, nil
	case sparse.TypeConverter:
		return m.ToCSC(), nil
	case *mat.Dense:
		errors.Warn(errors.NewDataConversionWarning(
			fmt.Sprintf("%T", X), "*sparse.CSC",
			"TF-IDF operates on the canonical sparse column form"))
		return denseToCSC(m), nil
	case *mat.VecDense:
		errors.Warn(errors.NewDataConversionWarning(
			fmt.Sprintf("%T", X), "*sparse.CSC",
			"TF-IDF operates on the canonical sparse column form"))
		return vecToCSC(m), nil
	default:
		return nil, errors.NewValueError("text.ToCSC",
			fmt.Sprintf("unsupported matrix type %T", X))
	}
}

func denseToCSC(m *mat.Dense) *sparse.CSC {
	r, c := m.Dims()
	dok := sparse.NewDOK(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); v != 0 {
				dok.Set(i, j, v)
			}
		}
	}
	return dok.ToCSC()
}

// vecToCSC treats a vector as a single-column matrix, matching gonum's
// convention for *mat.VecDense dimensions.
func vecToCSC(v *mat.VecDense) *sparse.CSC {
	n := v.Len()
	dok := sparse.NewDOK(n, 1)
	for i := 0; i < n; i++ {
		if val := v.AtVec(i); val != 0 {
			dok.Set(i, 0, val)
		}
	}
	return dok.ToCSC()
}
