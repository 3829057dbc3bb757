// Copyright 2025 Arcade Team
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Decision outcome label values.
const (
	OutcomeGranted = "granted"
	OutcomeDenied  = "denied"
	OutcomeError   = "error"
)

var (
	// AuthzDecisions counts permission checks by outcome.
	AuthzDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "authcenter",
		Subsystem: "authz",
		Name:      "decisions_total",
		Help:      "Permission check decisions by outcome.",
	}, []string{"outcome"})

	// AuthzCheckDuration observes end-to-end permission check latency.
	AuthzCheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "authcenter",
		Subsystem: "authz",
		Name:      "check_duration_seconds",
		Help:      "Permission check latency.",
		Buckets:   prometheus.DefBuckets,
	})

	// OrgUnitMoves counts organization-unit re-parent attempts by result.
	OrgUnitMoves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "authcenter",
		Subsystem: "orgunit",
		Name:      "moves_total",
		Help:      "Organization unit re-parent attempts by result.",
	}, []string{"result"})
)
