// Package metrics defines Prometheus instrumentation for the compression
// search engine.
//
// Metrics are registered on the default registry via promauto at package
// initialization. The engine itself opens no network listener; an embedding
// process that wants to scrape these metrics can expose the default registry
// through promhttp.
package metrics
