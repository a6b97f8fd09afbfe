// Package telemetry publishes run progress as Prometheus metrics.
//
// An Observer is attached to an experiment and updates a step counter, a
// step duration histogram and one gauge per recorded metric. The CLI serves
// its registry on /metrics when --metrics-addr is set.
package telemetry
