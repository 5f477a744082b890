// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package trielog

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alyokaz/besu/utils/wrappers"
)

type metrics struct {
	pruned   prometheus.Counter
	orphaned prometheus.Counter
	aged     prometheus.Counter
	exported prometheus.Counter
	imported prometheus.Counter
}

func newMetrics(namespace string, registerer prometheus.Registerer) (metrics, error) {
	m := metrics{
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pruned_total",
			Help:      "Trie logs deleted by prune runs",
		}),
		orphaned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pruned_orphaned_total",
			Help:      "Pruned trie logs that belonged to non-canonical blocks",
		}),
		aged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pruned_aged_total",
			Help:      "Pruned trie logs that aged out of the retention window",
		}),
		exported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exported_total",
			Help:      "Trie logs written to export files",
		}),
		imported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imported_total",
			Help:      "Trie logs read from import files",
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.pruned),
		registerer.Register(m.orphaned),
		registerer.Register(m.aged),
		registerer.Register(m.exported),
		registerer.Register(m.imported),
	)
	return m, errs.Err
}
