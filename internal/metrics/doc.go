// Package metrics records generation-run metrics.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// check for nil. PrometheusRecorder backs the CLI's --metrics-textfile flag,
// which writes the node-exporter textfile format for CI jobs to pick up.
package metrics
