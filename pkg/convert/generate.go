//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/equiref/diverso --repository.default-branch master --repository.path /pkg/convert

// Package convert applies unit conversions to measurement columns of
// patient tables. Conversions validate every value against a plausibility
// range before touching the table and never mutate their input.
package convert
