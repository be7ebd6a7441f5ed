// Package roles resolves an operator's directory group display names and
// answers privilege checks against them. Resolutions are cached with a TTL
// so the directory service is not consulted on every request.
package roles

import (
	"context"
	"log/slog"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	dErrors "citizengw/pkg/domain-errors"
	pstrings "citizengw/pkg/platform/strings"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "citizengw_role_cache_hits_total",
		Help: "Role lookups served from cache",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "citizengw_role_cache_misses_total",
		Help: "Role lookups that consulted the directory service",
	})
)

// DirectoryClient is the slice of the directory graph API the role service
// needs.
type DirectoryClient interface {
	MemberGroupIDs(ctx context.Context, oid string) ([]string, error)
	GroupDisplayName(ctx context.Context, groupID string) (string, error)
}

// Cache stores resolved group name lists keyed by operator OID. A miss is
// (nil, false, nil); an empty group list is a valid cached value.
type Cache interface {
	Get(ctx context.Context, oid string) ([]string, bool, error)
	Set(ctx context.Context, oid string, groups []string) error
}

// Service resolves and caches operator group memberships.
type Service struct {
	directory DirectoryClient
	cache     Cache
	logger    *slog.Logger

	// flight collapses concurrent misses for the same operator into one
	// directory round trip.
	flight singleflight.Group
}

// NewService constructs the role lookup service.
func NewService(directory DirectoryClient, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		directory: directory,
		cache:     cache,
		logger:    logger,
	}
}

// Groups returns the display names of every security group the operator
// belongs to. Resolution is all-or-nothing: if any group name lookup fails
// the whole result is discarded and nothing is cached.
func (s *Service) Groups(ctx context.Context, oid string) ([]string, error) {
	groups, ok, err := s.cache.Get(ctx, oid)
	if err != nil {
		// A degraded cache must not block authorization; treat as a miss.
		s.logger.WarnContext(ctx, "role cache read failed", "error", err)
	}
	if ok {
		cacheHits.Inc()
		return groups, nil
	}
	cacheMisses.Inc()

	v, err, _ := s.flight.Do(oid, func() (any, error) {
		return s.resolve(ctx, oid)
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// IsPrivileged reports whether the operator belongs to the named group.
func (s *Service) IsPrivileged(ctx context.Context, oid, group string) (bool, error) {
	groups, err := s.Groups(ctx, oid)
	if err != nil {
		return false, err
	}
	return slices.Contains(groups, group), nil
}

func (s *Service) resolve(ctx context.Context, oid string) ([]string, error) {
	ids, err := s.directory.MemberGroupIDs(ctx, oid)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolve operator group memberships")
	}
	ids = pstrings.DedupeAndTrim(ids)

	names := make([]string, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, id := range ids {
		g.Go(func() error {
			name, err := s.directory.GroupDisplayName(gctx, id)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "resolve group display name")
			}
			names[i] = name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, oid, names); err != nil {
		s.logger.WarnContext(ctx, "role cache write failed", "error", err)
	}
	return names, nil
}
