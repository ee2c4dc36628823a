package text

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/scitext/scitext/core/model"
	"github.com/scitext/scitext/pkg/errors"
	"github.com/scitext/scitext/pkg/log"
)

// Norm identifies the row normalization applied to each document vector
// during Transform.
type Norm string

const (
	// NormL1 divides each row by the sum of absolute values in that row.
	NormL1 Norm = "l1"
	// NormL2 divides each row by its Euclidean length.
	NormL2 Norm = "l2"
	// NormNone leaves rows unscaled.
	NormNone Norm = "none"
)

// TfidfTransformer learns inverse-document-frequency weights from a training
// corpus and applies TF-IDF weighting to document-term count matrices.
//
// A fitted transformer holds one IDF weight per term. Transform scales each
// stored count (optionally damped to 1 + log(count)), normalizes each
// document row, and multiplies by the diagonal IDF matrix. The input matrix
// and the fitted weights are never mutated, so Transform may be called
// concurrently once Fit has completed. Fit replaces the weights and is not
// safe to call concurrently with other methods on the same instance.
//
// Counts may be signed: a feature-hashing vectorizer can flip the sign of
// collided counts, and document frequency treats any non-zero stored value as
// term presence.
type TfidfTransformer struct {
	state *model.StateManager

	// SmoothIDF adds one to document frequencies, as if an extra document
	// containing every term once had been seen. Prevents infinite weights.
	// (default: true)
	SmoothIDF bool

	// Norm is the row normalization applied during Transform. (default: NormL1)
	Norm Norm

	// SublinearTF replaces each stored count tf with 1 + log(tf). (default: false)
	SublinearTF bool

	// idf and weights are the fitted per-term values and their diagonal
	// matrix form. Written only by Fit, read by Transform.
	idf     []float64
	weights *sparse.DIA
}

// NewTfidfTransformer creates a TfidfTransformer with scikit-learn compatible
// defaults: smooth_idf=true, norm=l1, sublinear_tf=false.
//
// A norm outside {l1, l2, none} fails here, at construction, with a ValueError.
//
// Example:
//
//	tfidf, err := text.NewTfidfTransformer(
//	    text.WithNorm(text.NormL2),
//	    text.WithSublinearTF(true),
//	)
func NewTfidfTransformer(opts ...Option) (*TfidfTransformer, error) {
	t := &TfidfTransformer{
		state:       model.NewStateManager(),
		SmoothIDF:   true,
		Norm:        NormL1,
		SublinearTF: false,
	}
	for _, opt := range opts {
		opt(t)
	}

	switch t.Norm {
	case NormL1, NormL2, NormNone:
	default:
		return nil, errors.NewValueError("NewTfidfTransformer",
			fmt.Sprintf("unknown norm %q: must be one of l1, l2, none", t.Norm))
	}

	return t, nil
}

// Fit learns the per-term IDF weights from a document-term count matrix.
// Rows are documents, columns are terms.
//
// The IDF of a term depends only on its document frequency, never on the
// normalization or TF scaling options:
//
//	idf(t) = log(D / (df(t) + 1))   if SmoothIDF
//	idf(t) = log(D / df(t))         otherwise
//
// With SmoothIDF disabled, a term absent from every document receives an
// infinite weight; that value is propagated, not treated as an error.
//
// The weights are recomputed into temporaries and swapped in at the end, so a
// failed Fit leaves any previously fitted state intact.
func (t *TfidfTransformer) Fit(X mat.Matrix) error {
	csc, err := ToCSC(X)
	if err != nil {
		return err
	}

	d, nTerms := csc.Dims()
	if d == 0 || nTerms == 0 {
		return errors.NewModelError("TfidfTransformer.Fit", "empty data", errors.ErrEmptyData)
	}

	// Document frequency counts stored non-zeros per column. Hashed counts
	// with flipped signs still register as presence.
	df := make([]int, nTerms)
	csc.DoNonZero(func(i, j int, v float64) {
		if v != 0 {
			df[j]++
		}
	})

	idf := make([]float64, nTerms)
	for j, n := range df {
		if t.SmoothIDF {
			idf[j] = math.Log(float64(d) / float64(n+1))
		} else {
			idf[j] = math.Log(float64(d) / float64(n))
		}
	}

	t.idf = idf
	t.weights = sparse.NewDIA(nTerms, nTerms, idf)
	t.state.SetDimensions(nTerms, d)
	t.state.SetFitted()

	logger := log.GetLoggerWithName("feature.text")
	logger.Debug("IDF weights fitted",
		log.ModelNameKey, "TfidfTransformer",
		log.OperationKey, "fit",
		log.SamplesKey, d,
		log.FeaturesKey, nTerms,
		log.NNZKey, csc.NNZ(),
	)
	return nil
}

// Transform applies the fitted IDF weights to a document-term matrix and
// returns a new matrix in compressed sparse column form. The input may have
// any number of documents but must have the same term count as seen at fit
// time. Neither the input nor the fitted state is mutated.
func (t *TfidfTransformer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !t.state.IsFitted() {
		return nil, errors.NewNotFittedError("TfidfTransformer", "Transform")
	}

	csc, err := ToCSC(X)
	if err != nil {
		return nil, err
	}

	r, c := csc.Dims()
	nFeatures, _ := t.state.GetDimensions()
	if c != nFeatures {
		return nil, errors.NewDimensionError("TfidfTransformer.Transform", nFeatures, c, 1)
	}

	nnz := csc.NNZ()
	rows := make([]int, 0, nnz)
	cols := make([]int, 0, nnz)
	vals := make([]float64, 0, nnz)
	rowAgg := make([]float64, r)

	csc.DoNonZero(func(i, j int, v float64) {
		if t.SublinearTF {
			// Only explicitly stored values are damped; implicit zeros stay zero.
			v = 1 + math.Log(v)
		}
		rows = append(rows, i)
		cols = append(cols, j)
		vals = append(vals, v)
		switch t.Norm {
		case NormL1:
			rowAgg[i] += math.Abs(v)
		case NormL2:
			rowAgg[i] += v * v
		}
	})

	if t.Norm == NormL2 {
		for i := range rowAgg {
			rowAgg[i] = math.Sqrt(rowAgg[i])
		}
	}
	if t.Norm != NormNone {
		for k, i := range rows {
			// Rows with zero mass are left unscaled to avoid 0/0.
			if rowAgg[i] != 0 {
				vals[k] /= rowAgg[i]
			}
		}
	}

	normalized := sparse.NewCOO(r, c, rows, cols, vals).ToCSR()

	// Column t of the result is the normalized column scaled by idf(t).
	product := &sparse.CSR{}
	if err := errors.SafeExecute("TfidfTransformer.Transform: idf multiply", func() error {
		product.Mul(normalized, t.weights)
		return nil
	}); err != nil {
		return nil, err
	}

	logger := log.GetLoggerWithName("feature.text")
	logger.Debug("Matrix weighted",
		log.ModelNameKey, "TfidfTransformer",
		log.OperationKey, "transform",
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.NNZKey, product.NNZ(),
	)
	return product.ToCSC(), nil
}

// FitTransform fits the transformer on X and transforms the same X.
// The result is numerically identical to calling Fit followed by Transform.
func (t *TfidfTransformer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}

// IDF returns a copy of the fitted per-term IDF weights, or nil if the
// transformer has not been fitted.
func (t *TfidfTransformer) IDF() []float64 {
	if t.idf == nil {
		return nil
	}
	out := make([]float64, len(t.idf))
	copy(out, t.idf)
	return out
}

// NFeatures returns the term count seen at fit time, or 0 before fitting.
func (t *TfidfTransformer) NFeatures() int {
	nFeatures, _ := t.state.GetDimensions()
	return nFeatures
}

// IsFitted returns whether Fit has completed successfully.
func (t *TfidfTransformer) IsFitted() bool {
	return t.state.IsFitted()
}

// GetParams returns the transformer's hyperparameters.
func (t *TfidfTransformer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"smooth_idf":   t.SmoothIDF,
		"norm":         string(t.Norm),
		"sublinear_tf": t.SublinearTF,
	}
}

// String returns a string representation of the transformer.
func (t *TfidfTransformer) String() string {
	if !t.IsFitted() {
		return fmt.Sprintf("TfidfTransformer(smooth_idf=%t, norm=%s, sublinear_tf=%t)",
			t.SmoothIDF, t.Norm, t.SublinearTF)
	}
	return fmt.Sprintf("TfidfTransformer(smooth_idf=%t, norm=%s, sublinear_tf=%t, n_features=%d)",
		t.SmoothIDF, t.Norm, t.SublinearTF, t.NFeatures())
}
