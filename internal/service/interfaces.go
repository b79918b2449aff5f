package service

import (
	"context"

	"f1grid/internal/domain"
)

// TeamCache defines the interface for the persisted team snapshot
type TeamCache interface {
	// Read returns the cached snapshot when present and still fresh
	Read(ctx context.Context) ([]domain.TeamRecord, bool)

	// Write stores a snapshot best-effort; failures are never surfaced
	Write(ctx context.Context, teams []domain.TeamRecord)

	// Purge removes the snapshot unconditionally
	Purge(ctx context.Context) error
}

// RemoteSource defines the interface for the live race-statistics API
type RemoteSource interface {
	// FetchTeams fetches and normalizes the constructor list, bounded by the
	// configured deadline
	FetchTeams(ctx context.Context) ([]domain.TeamRecord, error)

	// FetchDrivers fetches the driver roster; its failures degrade to an
	// empty slice since drivers are supplementary enrichment
	FetchDrivers(ctx context.Context) []domain.DriverRecord
}

// FallbackSource defines the interface for the bundled static teams document
type FallbackSource interface {
	// FetchTeams loads and validates the bundled document
	FetchTeams(ctx context.Context) ([]domain.TeamRecord, error)
}

// Services aggregates the application services
type Services struct {
	Teams *TeamService
}
