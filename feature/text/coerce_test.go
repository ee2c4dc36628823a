package text

import (
	"testing"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/scitext/scitext/pkg/errors"
)

func TestToCSC_PassThrough(t *testing.T) {
	dok := sparse.NewDOK(2, 2)
	dok.Set(0, 0, 1)
	csc := dok.ToCSC()

	got, err := ToCSC(csc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != csc {
		t.Error("coercing a CSC should return the same instance")
	}
}

func TestToCSC_SparseFamily(t *testing.T) {
	dok := sparse.NewDOK(3, 2)
	dok.Set(0, 0, 2)
	dok.Set(1, 0, 1)
	dok.Set(1, 1, 1)
	dok.Set(2, 1, 3)

	inputs := map[string]mat.Matrix{
		"dok": dok,
		"csr": dok.ToCSR(),
		"coo": dok.ToCOO(),
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			csc, err := ToCSC(in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			r, c := csc.Dims()
			if r != 3 || c != 2 {
				t.Fatalf("shape = %dx%d, want 3x2", r, c)
			}
			if csc.At(2, 1) != 3 {
				t.Errorf("At(2,1) = %v, want 3", csc.At(2, 1))
			}
			if csc.NNZ() != 4 {
				t.Errorf("NNZ = %d, want 4", csc.NNZ())
			}
		})
	}
}

func TestToCSC_DenseEmitsWarning(t *testing.T) {
	var captured error
	errors.SetWarningHandler(func(w error) {
		captured = w
	})
	defer errors.SetWarningHandler(nil)

	csc, err := ToCSC(mat.NewDense(2, 2, []float64{1, 0, 0, 4}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if csc.NNZ() != 2 {
		t.Errorf("NNZ = %d, want 2 (zeros must not be stored)", csc.NNZ())
	}
	if csc.At(1, 1) != 4 {
		t.Errorf("At(1,1) = %v, want 4", csc.At(1, 1))
	}

	var conv *errors.DataConversionWarning
	if captured == nil || !errors.As(captured, &conv) {
		t.Errorf("expected DataConversionWarning for dense input, got %v", captured)
	}
}

func TestToCSC_Vector(t *testing.T) {
	csc, err := ToCSC(mat.NewVecDense(3, []float64{0, 2, 0}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, c := csc.Dims()
	if r != 3 || c != 1 {
		t.Fatalf("shape = %dx%d, want 3x1", r, c)
	}
	if csc.At(1, 0) != 2 {
		t.Errorf("At(1,0) = %v, want 2", csc.At(1, 0))
	}
}

func TestToCSC_UnsupportedType(t *testing.T) {
	_, err := ToCSC(mat.NewSymDense(2, []float64{1, 0, 0, 1}))
	if err == nil {
		t.Fatal("expected error for unsupported matrix type")
	}

	var valErr *errors.ValueError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *errors.ValueError, got %T: %v", err, err)
	}
}

// Identical data through different representations must produce identical
// transformed output.
func TestTransform_RepresentationInvariance(t *testing.T) {
	tf, err := NewTfidfTransformer(WithSmoothIDF(false), WithNorm(NormL2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dense := countMatrix()
	if err := tf.Fit(dense); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	dok := sparse.NewDOK(3, 2)
	dok.Set(0, 0, 2)
	dok.Set(1, 0, 1)
	dok.Set(1, 1, 1)
	dok.Set(2, 1, 3)

	fromDense, err := tf.Transform(dense)
	if err != nil {
		t.Fatalf("Transform(dense) failed: %v", err)
	}
	fromSparse, err := tf.Transform(dok.ToCSR())
	if err != nil {
		t.Fatalf("Transform(csr) failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if fromDense.At(i, j) != fromSparse.At(i, j) {
				t.Errorf("representations diverge at [%d][%d]: %v vs %v",
					i, j, fromDense.At(i, j), fromSparse.At(i, j))
			}
		}
	}
}
