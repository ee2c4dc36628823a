package text

import (
	"math"
	"testing"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/scitext/scitext/pkg/errors"
)

// countMatrix is the 3-document, 2-term fixture used throughout:
// df = [2, 2] for both terms.
func countMatrix() *mat.Dense {
	return mat.NewDense(3, 2, []float64{
		2, 0,
		1, 1,
		0, 3,
	})
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewTfidfTransformer_Defaults(t *testing.T) {
	tf, err := NewTfidfTransformer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tf.SmoothIDF {
		t.Error("SmoothIDF should default to true")
	}
	if tf.Norm != NormL1 {
		t.Errorf("Norm should default to l1, got %s", tf.Norm)
	}
	if tf.SublinearTF {
		t.Error("SublinearTF should default to false")
	}
	if tf.IsFitted() {
		t.Error("fresh transformer must not be fitted")
	}
}

func TestNewTfidfTransformer_InvalidNorm(t *testing.T) {
	_, err := NewTfidfTransformer(WithNorm("l3"))
	if err == nil {
		t.Fatal("expected error for unknown norm")
	}

	var valErr *errors.ValueError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *errors.ValueError, got %T: %v", err, err)
	}
}

func TestTransform_NotFitted(t *testing.T) {
	tf, err := NewTfidfTransformer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tf.Transform(countMatrix())
	if err == nil {
		t.Fatal("expected NotFittedError from unfitted Transform")
	}

	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Fatalf("expected *errors.NotFittedError, got %T: %v", err, err)
	}
}

// With smooth_idf and df(t) = D-1 for every term, idf = log(3/3) = 0 and the
// weighted output is the zero matrix regardless of the input values. This
// isolates the diagonal multiplication from the normalization step.
func TestTransform_ZeroIDF(t *testing.T) {
	tf, err := NewTfidfTransformer(WithNorm(NormNone))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := tf.FitTransform(countMatrix())
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	r, c := out.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("output shape = %dx%d, want 3x2", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if out.At(i, j) != 0 {
				t.Errorf("out[%d][%d] = %v, want 0", i, j, out.At(i, j))
			}
		}
	}

	idf := tf.IDF()
	for j, w := range idf {
		if w != 0 {
			t.Errorf("idf[%d] = %v, want 0", j, w)
		}
	}
}

func TestFit_IDFValues(t *testing.T) {
	tests := []struct {
		name    string
		smooth  bool
		wantIDF []float64
	}{
		{
			name:    "smoothed",
			smooth:  true,
			wantIDF: []float64{math.Log(3.0 / 3.0), math.Log(3.0 / 3.0)},
		},
		{
			name:    "unsmoothed",
			smooth:  false,
			wantIDF: []float64{math.Log(3.0 / 2.0), math.Log(3.0 / 2.0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf, err := NewTfidfTransformer(WithSmoothIDF(tt.smooth))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := tf.Fit(countMatrix()); err != nil {
				t.Fatalf("Fit failed: %v", err)
			}

			idf := tf.IDF()
			if len(idf) != len(tt.wantIDF) {
				t.Fatalf("len(idf) = %d, want %d", len(idf), len(tt.wantIDF))
			}
			for j := range idf {
				if !almostEqual(idf[j], tt.wantIDF[j], 1e-12) {
					t.Errorf("idf[%d] = %v, want %v", j, idf[j], tt.wantIDF[j])
				}
			}
		})
	}
}

// IDF is a function of document frequency only: TF scaling and normalization
// options must not change the fitted weights.
func TestFit_IDFIndependentOfTFOptions(t *testing.T) {
	plain, err := NewTfidfTransformer(WithSmoothIDF(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scaled, err := NewTfidfTransformer(WithSmoothIDF(false), WithSublinearTF(true), WithNorm(NormL2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := plain.Fit(countMatrix()); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if err := scaled.Fit(countMatrix()); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	a, b := plain.IDF(), scaled.IDF()
	for j := range a {
		if a[j] != b[j] {
			t.Errorf("idf[%d] differs across TF options: %v vs %v", j, a[j], b[j])
		}
	}
}

func TestFit_Idempotent(t *testing.T) {
	tf, err := NewTfidfTransformer(WithSmoothIDF(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tf.Fit(countMatrix()); err != nil {
		t.Fatalf("first Fit failed: %v", err)
	}
	first := tf.IDF()

	if err := tf.Fit(countMatrix()); err != nil {
		t.Fatalf("second Fit failed: %v", err)
	}
	second := tf.IDF()

	for j := range first {
		if first[j] != second[j] {
			t.Errorf("idf[%d] changed across identical fits: %v vs %v", j, first[j], second[j])
		}
	}
}

func TestFitTransform_EquivalentToFitThenTransform(t *testing.T) {
	X := countMatrix()

	combined, err := NewTfidfTransformer(WithSmoothIDF(false), WithNorm(NormL2), WithSublinearTF(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stepwise, err := NewTfidfTransformer(WithSmoothIDF(false), WithNorm(NormL2), WithSublinearTF(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outCombined, err := combined.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	if err := stepwise.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	outStepwise, err := stepwise.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	r, c := outCombined.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if outCombined.At(i, j) != outStepwise.At(i, j) {
				t.Errorf("outputs differ at [%d][%d]: %v vs %v",
					i, j, outCombined.At(i, j), outStepwise.At(i, j))
			}
		}
	}
}

func TestTransform_SublinearTF(t *testing.T) {
	// smooth_idf=false so idf = log(3/2) != 0 and the damped values survive
	// the diagonal multiply.
	tf, err := NewTfidfTransformer(WithSmoothIDF(false), WithNorm(NormNone), WithSublinearTF(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := tf.FitTransform(countMatrix())
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	idf := math.Log(3.0 / 2.0)
	want00 := (1 + math.Log(2)) * idf // count 2 damped to 1+log(2) ≈ 1.693
	if !almostEqual(out.At(0, 0), want00, 1e-12) {
		t.Errorf("out[0][0] = %v, want %v", out.At(0, 0), want00)
	}
	// Implicit zeros stay zero, never 1 + log(0).
	if out.At(0, 1) != 0 {
		t.Errorf("out[0][1] = %v, want 0", out.At(0, 1))
	}
	want11 := (1 + math.Log(1)) * idf
	if !almostEqual(out.At(1, 1), want11, 1e-12) {
		t.Errorf("out[1][1] = %v, want %v", out.At(1, 1), want11)
	}
}

// With l1 normalization, the pre-IDF intermediate has unit absolute row sums.
// The intermediate is reconstructed from the output by dividing out the
// (non-zero) IDF weights.
func TestTransform_L1RowLaw(t *testing.T) {
	tf, err := NewTfidfTransformer(WithSmoothIDF(false), WithNorm(NormL1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := tf.FitTransform(countMatrix())
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	idf := tf.IDF()
	r, c := out.Dims()
	for i := 0; i < r; i++ {
		var rowSum float64
		for j := 0; j < c; j++ {
			rowSum += math.Abs(out.At(i, j) / idf[j])
		}
		if !almostEqual(rowSum, 1.0, 1e-12) {
			t.Errorf("pre-IDF abs row sum for row %d = %v, want 1", i, rowSum)
		}
	}
}

// With norm=none and sublinear_tf=false the pre-IDF intermediate equals the
// input exactly: out[i][j] = count * idf[j].
func TestTransform_NoNorm(t *testing.T) {
	tf, err := NewTfidfTransformer(WithSmoothIDF(false), WithNorm(NormNone))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	X := countMatrix()
	out, err := tf.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	idf := tf.IDF()
	r, c := out.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			want := X.At(i, j) * idf[j]
			if !almostEqual(out.At(i, j), want, 1e-12) {
				t.Errorf("out[%d][%d] = %v, want %v", i, j, out.At(i, j), want)
			}
		}
	}
}

func TestTransform_ZeroRowGuard(t *testing.T) {
	tf, err := NewTfidfTransformer(WithSmoothIDF(false), WithNorm(NormL2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tf.Fit(countMatrix()); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Second document has zero total count.
	X := mat.NewDense(2, 2, []float64{
		4, 1,
		0, 0,
	})
	out, err := tf.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	for j := 0; j < 2; j++ {
		v := out.At(1, j)
		if v != 0 || math.IsNaN(v) {
			t.Errorf("zero row produced out[1][%d] = %v, want 0", j, v)
		}
	}
}

// Smoothing keeps every weight finite even for terms absent from the corpus;
// without smoothing an absent term receives +Inf, which is propagated.
func TestFit_ZeroDocumentFrequency(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{
		1, 0,
		2, 0,
	})

	smoothed, err := NewTfidfTransformer(WithSmoothIDF(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := smoothed.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if err := errors.CheckNumericalStability("smoothed idf", smoothed.IDF()); err != nil {
		t.Errorf("smoothed IDF must be finite: %v", err)
	}

	unsmoothed, err := NewTfidfTransformer(WithSmoothIDF(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := unsmoothed.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if !math.IsInf(unsmoothed.IDF()[1], 1) {
		t.Errorf("idf[1] = %v, want +Inf for zero document frequency", unsmoothed.IDF()[1])
	}
}

// A feature-hashing vectorizer can flip the sign of collided counts; any
// stored non-zero must count as presence.
func TestFit_SignedCounts(t *testing.T) {
	dok := sparse.NewDOK(3, 2)
	dok.Set(0, 0, -2)
	dok.Set(1, 0, 1)
	dok.Set(1, 1, -1)
	dok.Set(2, 1, 3)

	tf, err := NewTfidfTransformer(WithSmoothIDF(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tf.Fit(dok); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// df = [2, 2] exactly as for the unsigned fixture.
	want := math.Log(3.0 / 2.0)
	for j, w := range tf.IDF() {
		if !almostEqual(w, want, 1e-12) {
			t.Errorf("idf[%d] = %v, want %v", j, w, want)
		}
	}
}

func TestTransform_DimensionMismatch(t *testing.T) {
	tf, err := NewTfidfTransformer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tf.Fit(countMatrix()); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	X := mat.NewDense(2, 3, []float64{
		1, 0, 2,
		0, 1, 0,
	})
	_, err = tf.Transform(X)
	if err == nil {
		t.Fatal("expected dimension error for column-count mismatch")
	}

	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected *errors.DimensionError, got %T: %v", err, err)
	}
	if dimErr.Expected != 2 || dimErr.Got != 3 {
		t.Errorf("Expected/Got = %d/%d, want 2/3", dimErr.Expected, dimErr.Got)
	}
}

func TestFit_EmptyData(t *testing.T) {
	tf, err := NewTfidfTransformer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = tf.Fit(sparse.NewDOK(0, 0).ToCSC())
	if err == nil {
		t.Fatal("expected error for empty matrix")
	}
	if !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
	if tf.IsFitted() {
		t.Error("failed Fit must not mark the transformer fitted")
	}
}

// A failed Fit must leave previously fitted weights in place.
func TestFit_FailureKeepsPriorState(t *testing.T) {
	tf, err := NewTfidfTransformer(WithSmoothIDF(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tf.Fit(countMatrix()); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	before := tf.IDF()

	if err := tf.Fit(sparse.NewDOK(0, 0).ToCSC()); err == nil {
		t.Fatal("expected error for empty matrix")
	}

	after := tf.IDF()
	if len(after) != len(before) {
		t.Fatalf("fitted weights lost after failed Fit")
	}
	for j := range before {
		if before[j] != after[j] {
			t.Errorf("idf[%d] changed after failed Fit: %v vs %v", j, before[j], after[j])
		}
	}
	if !tf.IsFitted() {
		t.Error("transformer should remain fitted after failed re-fit")
	}
}

func TestTransform_DoesNotMutateInput(t *testing.T) {
	tf, err := NewTfidfTransformer(WithSmoothIDF(false), WithNorm(NormL2), WithSublinearTF(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dok := sparse.NewDOK(3, 2)
	dok.Set(0, 0, 2)
	dok.Set(1, 0, 1)
	dok.Set(1, 1, 1)
	dok.Set(2, 1, 3)
	input := dok.ToCSC()

	if _, err := tf.FitTransform(input); err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	want := [][]float64{{2, 0}, {1, 1}, {0, 3}}
	for i := range want {
		for j := range want[i] {
			if input.At(i, j) != want[i][j] {
				t.Errorf("input mutated at [%d][%d]: %v, want %v", i, j, input.At(i, j), want[i][j])
			}
		}
	}
}

// Transform on matrices unseen at fit time, including new documents.
func TestTransform_UnseenDocuments(t *testing.T) {
	tf, err := NewTfidfTransformer(WithSmoothIDF(false), WithNorm(NormNone))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tf.Fit(countMatrix()); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	X := mat.NewDense(1, 2, []float64{5, 7})
	out, err := tf.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	idf := math.Log(3.0 / 2.0)
	if !almostEqual(out.At(0, 0), 5*idf, 1e-12) {
		t.Errorf("out[0][0] = %v, want %v", out.At(0, 0), 5*idf)
	}
	if !almostEqual(out.At(0, 1), 7*idf, 1e-12) {
		t.Errorf("out[0][1] = %v, want %v", out.At(0, 1), 7*idf)
	}
}

func TestGetParamsAndString(t *testing.T) {
	tf, err := NewTfidfTransformer(WithNorm(NormL2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := tf.GetParams()
	if params["norm"] != "l2" {
		t.Errorf("params[norm] = %v, want l2", params["norm"])
	}
	if params["smooth_idf"] != true {
		t.Errorf("params[smooth_idf] = %v, want true", params["smooth_idf"])
	}

	s := tf.String()
	if s != "TfidfTransformer(smooth_idf=true, norm=l2, sublinear_tf=false)" {
		t.Errorf("unexpected String(): %s", s)
	}

	if err := tf.Fit(countMatrix()); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	s = tf.String()
	if s != "TfidfTransformer(smooth_idf=true, norm=l2, sublinear_tf=false, n_features=2)" {
		t.Errorf("unexpected fitted String(): %s", s)
	}
}
