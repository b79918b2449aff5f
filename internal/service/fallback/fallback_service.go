package fallback

import (
	"context"
	"encoding/json"
	"os"

	"f1grid/internal/domain"
	"f1grid/internal/service"
	"f1grid/pkg/errors"
	"f1grid/pkg/logger"
)

// Service implements the FallbackSource interface on top of the bundled
// teams document shipped with the binary.
type Service struct {
	path   string
	logger *logger.Logger
}

// document is the expected fallback shape {teams: [...]}
type document struct {
	Teams []domain.TeamRecord `json:"teams"`
}

// NewService creates a new static fallback source
func NewService(path string, logger *logger.Logger) service.FallbackSource {
	return &Service{
		path:   path,
		logger: logger,
	}
}

// FetchTeams loads the bundled document. A missing file, a malformed body,
// and an empty teams list are all fallback failures, never a valid empty
// result.
func (s *Service) FetchTeams(ctx context.Context) ([]domain.TeamRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewFallbackUnavailableError("fallback read cancelled", err)
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.NewFallbackUnavailableError("failed to read bundled teams document", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.NewFallbackUnavailableError("bundled teams document is malformed", err)
	}
	if len(doc.Teams) == 0 {
		return nil, errors.NewFallbackUnavailableError("bundled teams document has no teams", nil)
	}

	teams := make([]domain.TeamRecord, 0, len(doc.Teams))
	for _, team := range doc.Teams {
		teams = append(teams, normalize(team))
	}

	s.logger.WithFields(map[string]interface{}{
		"path":  s.path,
		"teams": len(teams),
	}).Debug("Loaded teams from bundled fallback document")
	return teams, nil
}

// normalize fills the derivable fields a hand-maintained document tends to
// leave out.
func normalize(team domain.TeamRecord) domain.TeamRecord {
	if team.ID == "" {
		team.ID = domain.Slugify(team.Name)
	}
	if team.AccentColor == "" {
		team.AccentColor = domain.TeamAccentColor(team.Name)
	}
	if team.LogoRef == "" {
		team.LogoRef = "/assets/logos/" + team.ID + ".png"
	}
	if team.Drivers == nil {
		team.Drivers = []domain.DriverRecord{}
	}
	return team
}
