//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/equiref/diverso --repository.default-branch master --repository.path /

// Package diverso reconciles clinical study exports. One run merges a
// survey table and a recruitment table into a single row per patient,
// converts the centimeter height column to meters, and folds the result
// into the output of earlier runs, so the output file accumulates
// patients across repeated exports.
package diverso
