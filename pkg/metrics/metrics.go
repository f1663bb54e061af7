// Copyright 2025 Aperture Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ingest sources
const (
	SourceFile = "file"
	SourceURL  = "url"
)

// ingest results
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

var registry = prometheus.NewRegistry()

var (
	// IngestsTotal counts image ingests by source and result.
	IngestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aperture",
			Subsystem: "upload",
			Name:      "ingests_total",
			Help:      "Total number of image ingests by source and result.",
		},
		[]string{"source", "result"},
	)

	// ReconcileOrphans reports the orphan count found by the last storage scan.
	ReconcileOrphans = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "aperture",
			Subsystem: "reconcile",
			Name:      "orphan_objects",
			Help:      "Number of orphan storage objects found by the last scan.",
		},
	)

	// ReconcileDeletedTotal counts orphan objects removed by reconciliation.
	ReconcileDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aperture",
			Subsystem: "reconcile",
			Name:      "deleted_objects_total",
			Help:      "Total number of orphan storage objects deleted.",
		},
	)
)

func init() {
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(IngestsTotal, ReconcileOrphans, ReconcileDeletedTotal)
}

// Handler exposes the metrics registry over HTTP.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
