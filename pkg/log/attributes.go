// Package log defines standard attribute keys for vectorization operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in SciText. Using these standard keys enables better
// log analysis, monitoring, and debugging of text-vectorization workflows.
//
// These keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the transformer type, instance, and operation being performed.
const (
	// ModelNameKey identifies the type of transformer.
	// Examples: "TfidfTransformer", "Normalizer"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "feature.text", "preprocessing", "metrics"
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// SamplesKey indicates the number of documents (rows) in the matrix.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of terms (columns) in the matrix.
	// Important for dimensionality tracking and debugging shape mismatches.
	FeaturesKey = "data.features"

	// NNZKey indicates the number of explicitly stored non-zero entries.
	// Useful for tracking sparsity through a pipeline.
	NNZKey = "data.nnz"

	// DataTypeKey specifies the concrete matrix type being processed.
	// Examples: "*sparse.CSC", "*sparse.CSR", "*mat.Dense"
	DataTypeKey = "data.type"
)

// Performance Metrics
// These attributes capture timing information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
