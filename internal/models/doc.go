// Package models lists the models a provider offers for the configured API
// key, so users can pick a value for --model.
package models
