// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package meterdb

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alyokaz/besu/utils/wrappers"
)

// nanosecondsBuckets covers ~100ns to ~100ms per call.
var nanosecondsBuckets = prometheus.ExponentialBuckets(100, 10, 7)

func newMetric(namespace, name string) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Help:      fmt.Sprintf("Latency of a %s call in nanoseconds", name),
		Buckets:   nanosecondsBuckets,
	})
}

type metrics struct {
	has,
	get,
	put,
	delete,
	newBatch,
	newIterator,
	compact,
	close,
	bWrite,
	iNext prometheus.Histogram
}

func (m *metrics) Initialize(
	namespace string,
	registerer prometheus.Registerer,
) error {
	m.has = newMetric(namespace, "has")
	m.get = newMetric(namespace, "get")
	m.put = newMetric(namespace, "put")
	m.delete = newMetric(namespace, "delete")
	m.newBatch = newMetric(namespace, "new_batch")
	m.newIterator = newMetric(namespace, "new_iterator")
	m.compact = newMetric(namespace, "compact")
	m.close = newMetric(namespace, "close")
	m.bWrite = newMetric(namespace, "batch_write")
	m.iNext = newMetric(namespace, "iterator_next")

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.has),
		registerer.Register(m.get),
		registerer.Register(m.put),
		registerer.Register(m.delete),
		registerer.Register(m.newBatch),
		registerer.Register(m.newIterator),
		registerer.Register(m.compact),
		registerer.Register(m.close),
		registerer.Register(m.bWrite),
		registerer.Register(m.iNext),
	)
	return errs.Err
}
