// Package text provides feature weighting for document-term matrices.
//
// The package operates on matrices whose rows are documents and whose columns
// are terms, produced upstream by a tokenizer/vectorizer. It does not
// tokenize text or build vocabularies itself; its job is the statistical
// weighting step, scikit-learn's feature_extraction.text.TfidfTransformer
// equivalent.
//
// Sparse inputs from github.com/james-bowman/sparse are handled natively and
// are never densified. Dense gonum matrices are accepted and converted to the
// canonical compressed sparse column form, with a DataConversionWarning
// emitted through the pkg/errors warning system.
package text
