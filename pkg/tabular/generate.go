//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/equiref/diverso --repository.default-branch master --repository.path /pkg/tabular

// Package tabular defines the in-memory table model shared by all diverso
// components: ordered columns, rows of typed cell values, and the reader
// and writer contracts that file codecs implement.
//
// Column order is preserved for output but carries no merge semantics.
// Column names are unique and non-empty, and every row covers exactly the
// column set; violations surface as MalformedTableError.
package tabular
