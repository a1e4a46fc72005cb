// Package batch discovers catalogs below a directory and translates them with bounded concurrency.
package batch
