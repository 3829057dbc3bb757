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

package service

import (
	"context"
	"time"

	"github.com/go-arcade/authcenter/internal/authcenter/authz"
	"github.com/go-arcade/authcenter/internal/authcenter/metrics"
	"github.com/go-arcade/authcenter/pkg/log"
)

// AuthzService fronts the resolver for callers. Results are computed fresh
// on every call; nothing is cached across requests.
type AuthzService struct {
	resolver *authz.Resolver

	// Options is the deployment-wide resolve policy, applied when the
	// caller does not override it.
	Options authz.ResolveOptions
}

func NewAuthzService(resolver *authz.Resolver) *AuthzService {
	return &AuthzService{
		resolver: resolver,
		Options:  authz.DefaultResolveOptions(),
	}
}

// IsGranted checks one permission for one principal and records the
// decision metric.
func (as *AuthzService) IsGranted(ctx context.Context, tenantId *int64, userId int64, name string, opts *authz.ResolveOptions) (bool, error) {
	if opts == nil {
		opts = &as.Options
	}
	start := time.Now()
	granted, err := as.resolver.IsGranted(ctx, tenantId, userId, name, opts)
	metrics.AuthzCheckDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		metrics.AuthzDecisions.WithLabelValues(metrics.OutcomeError).Inc()
		log.Warnw("permission check failed", "userId", userId, "permission", name, "error", err)
		return false, err
	case granted:
		metrics.AuthzDecisions.WithLabelValues(metrics.OutcomeGranted).Inc()
	default:
		metrics.AuthzDecisions.WithLabelValues(metrics.OutcomeDenied).Inc()
	}
	return granted, nil
}
