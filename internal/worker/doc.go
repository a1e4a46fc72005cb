// Package worker runs a function over a list of inputs with bounded concurrency.
package worker
