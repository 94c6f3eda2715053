//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/equiref/diverso --repository.default-branch master --repository.path /pkg/reconcile

// Package reconcile merges patient tables under explicit precedence rules.
//
// Two operations cover the lifecycle of a study export: Patients joins the
// survey and recruitment tables into one row per patient, and Accumulate
// folds a freshly merged table into the output of earlier runs. Both are
// pure functions over tables; reading and writing files is the caller's
// concern.
package reconcile
