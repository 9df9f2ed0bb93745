// Package forecast defines the provider interface for per-slot production
// and consumption predictions. Providers are external collaborators; the
// optimizer only consumes their output vectors.
package forecast
