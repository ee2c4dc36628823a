package text

// Option is a function that configures TfidfTransformer
type Option func(*TfidfTransformer)

// WithSmoothIDF sets whether one is added to document frequencies before
// taking the logarithm, preventing infinite weights for unseen terms
func WithSmoothIDF(smooth bool) Option {
	return func(t *TfidfTransformer) {
		t.SmoothIDF = smooth
	}
}

// WithNorm sets the row normalization applied during Transform
func WithNorm(norm Norm) Option {
	return func(t *TfidfTransformer) {
		t.Norm = norm
	}
}

// WithSublinearTF sets whether stored term counts are damped to 1 + log(tf)
func WithSublinearTF(sublinear bool) Option {
	return func(t *TfidfTransformer) {
		t.SublinearTF = sublinear
	}
}
