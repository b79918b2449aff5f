package service

import (
	"context"

	"f1grid/internal/domain"
	"f1grid/pkg/logger"
)

// TeamService is the single entry point for team data. It walks the source
// precedence order (cache, live API, bundled fallback) and always resolves
// to a list; callers see every failure mode collapsed into an empty result.
type TeamService struct {
	cache    TeamCache
	remote   RemoteSource
	fallback FallbackSource
	logger   *logger.Logger
}

// NewTeamService creates a new team service
func NewTeamService(cache TeamCache, remote RemoteSource, fallback FallbackSource, logger *logger.Logger) *TeamService {
	return &TeamService{
		cache:    cache,
		remote:   remote,
		fallback: fallback,
		logger:   logger,
	}
}

// FetchTeamsData returns the freshest team list any source can provide.
// A fresh cache hit short-circuits both fetch stages. Every successful
// non-cache fetch is written back to the cache. The empty list is the only
// failure signal; no error ever reaches the caller.
func (s *TeamService) FetchTeamsData(ctx context.Context) []domain.TeamRecord {
	if teams, ok := s.cache.Read(ctx); ok {
		s.logger.WithField("teams", len(teams)).Debug("Serving teams from cache")
		return teams
	}

	teams, err := s.remote.FetchTeams(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Live team fetch failed, trying bundled fallback")
	}
	if len(teams) > 0 {
		s.cache.Write(ctx, teams)
		return teams
	}
	// A zero-team API response falls through to the fallback, same as a
	// failure.

	teams, err = s.fallback.FetchTeams(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Bundled fallback unavailable")
	}
	if len(teams) > 0 {
		s.cache.Write(ctx, teams)
		return teams
	}

	s.logger.Error("Every team data source failed, serving empty list")
	return []domain.TeamRecord{}
}

// FetchDriversData returns the flattened driver roster across all teams.
// When no team carries a roster it enriches the view from the drivers
// endpoint, which degrades to empty on its own failures.
func (s *TeamService) FetchDriversData(ctx context.Context) []domain.FlatDriver {
	teams := s.FetchTeamsData(ctx)
	drivers := domain.FlattenDrivers(teams)
	if len(drivers) > 0 {
		return drivers
	}

	// The live teams endpoint embeds no rosters; pull the standalone driver
	// list instead. These rows carry no team association.
	for _, d := range s.remote.FetchDrivers(ctx) {
		drivers = append(drivers, domain.FlatDriver{
			DriverRecord:  d,
			DisplayNumber: d.DisplayNumber(),
		})
	}
	return drivers
}

// PurgeCache drops the persisted snapshot so the next call re-runs the full
// pipeline.
func (s *TeamService) PurgeCache(ctx context.Context) error {
	return s.cache.Purge(ctx)
}
