// Package scitext provides text feature weighting for Go, designed for
// search, ranking and text-classification pipelines that already have a
// document-term count matrix and need scikit-learn compatible TF-IDF
// weighting on top of it.
//
// SciText offers a scikit-learn-like fit/transform API so that engineers
// familiar with Python's feature_extraction.text module can build the same
// vectorization pipelines in Go, backed by sparse linear algebra.
//
// # Features
//
// - scikit-learn compatible API: Fit / Transform / FitTransform lifecycle
// - Sparse-first: CSC/CSR/COO/DOK inputs handled without densification
// - Robust Error Handling: typed, stack-traced errors and warnings
// - Thread-safe inference: Transform is safe for concurrent readers
//
// # Quick Start
//
// Weighting a small count matrix:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/scitext/scitext/feature/text"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    // Rows are documents, columns are terms.
//	    counts := mat.NewDense(3, 2, []float64{
//	        2, 0,
//	        1, 1,
//	        0, 3,
//	    })
//
//	    tfidf, err := text.NewTfidfTransformer(text.WithNorm(text.NormL2))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    weighted, err := tfidf.FitTransform(counts)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println(mat.Formatted(weighted))
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - feature/text: TF-IDF weighting over sparse document-term matrices
//   - preprocessing: Row normalization utilities (Normalizer)
//   - metrics: Pairwise similarity over weighted vectors
//   - core/model: Core interfaces and lifecycle state types
//   - core/parallel: Parallel processing utilities
//   - pkg/errors: Structured errors and the warning system
//   - pkg/log: Structured logging interface and slog integration
//
// # scikit-learn Compatibility
//
// Transformers are configured with functional options mirroring the
// scikit-learn constructor parameters:
//
//	tfidf, err := text.NewTfidfTransformer(
//	    text.WithSmoothIDF(true),
//	    text.WithNorm(text.NormL1),
//	    text.WithSublinearTF(false),
//	)
//
// # License
//
// SciText is released under the MIT License.
package scitext
