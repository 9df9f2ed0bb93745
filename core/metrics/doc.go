// Package metrics defines interfaces and event types for recording schedule
// runs. Sinks like PromSink and InfluxSink record run outcomes, per-slot
// plans and evaluation results and can be combined with NewMultiSink. The
// factory helpers return a MultiSink automatically when multiple sinks are
// configured.
package metrics
