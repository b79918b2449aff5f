package ergast

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"f1grid/internal/domain"
	"f1grid/internal/service"
	"f1grid/pkg/errors"
	"f1grid/pkg/logger"
)

// Service implements the RemoteSource interface against the public
// race-statistics API.
type Service struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *logger.Logger
}

// teamsEnvelope mirrors the upstream response shape
// {MRData: {TeamTable: {Teams: [...]}}}. Pointers keep a missing level
// distinguishable from an empty one.
type teamsEnvelope struct {
	MRData *struct {
		TeamTable *struct {
			Teams []upstreamTeam `json:"Teams"`
		} `json:"TeamTable"`
	} `json:"MRData"`
}

type upstreamTeam struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	URL         string `json:"url"`
}

type driversEnvelope struct {
	MRData *struct {
		DriverTable *struct {
			Drivers []upstreamDriver `json:"Drivers"`
		} `json:"DriverTable"`
	} `json:"MRData"`
}

type upstreamDriver struct {
	DriverID        string `json:"driverId"`
	GivenName       string `json:"givenName"`
	FamilyName      string `json:"familyName"`
	PermanentNumber string `json:"permanentNumber"`
	Nationality     string `json:"nationality"`
	URL             string `json:"url"`
}

// NewService creates a new remote source for the race-statistics API
func NewService(baseURL string, timeout time.Duration, logger *logger.Logger) service.RemoteSource {
	return &Service{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// FetchTeams fetches the constructor list from the teams endpoint and
// normalizes it. The whole operation runs under a hard deadline; when the
// deadline fires the in-flight request is cancelled through its context
// rather than abandoned.
func (s *Service) FetchTeams(ctx context.Context) ([]domain.TeamRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.logger.WithField("base_url", s.baseURL).Debug("Fetching teams from race statistics API")

	var envelope teamsEnvelope
	if err := s.getJSON(ctx, s.baseURL+"/teams.json", &envelope); err != nil {
		return nil, err
	}

	if envelope.MRData == nil || envelope.MRData.TeamTable == nil {
		return nil, errors.NewMalformedResponseError("teams response missing MRData.TeamTable", nil)
	}

	teams := make([]domain.TeamRecord, 0, len(envelope.MRData.TeamTable.Teams))
	for _, upstream := range envelope.MRData.TeamTable.Teams {
		teams = append(teams, normalizeTeam(upstream))
	}

	s.logger.WithField("teams", len(teams)).Debug("Fetched teams from race statistics API")
	return teams, nil
}

// FetchDrivers fetches the driver roster from the drivers endpoint. Drivers
// are supplementary enrichment, so every failure is logged and degraded to
// an empty slice instead of propagating.
func (s *Service) FetchDrivers(ctx context.Context) []domain.DriverRecord {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var envelope driversEnvelope
	if err := s.getJSON(ctx, s.baseURL+"/drivers.json", &envelope); err != nil {
		s.logger.WithError(err).Warn("Driver fetch failed, continuing without rosters")
		return []domain.DriverRecord{}
	}

	if envelope.MRData == nil || envelope.MRData.DriverTable == nil {
		s.logger.Warn("Drivers response missing MRData.DriverTable, continuing without rosters")
		return []domain.DriverRecord{}
	}

	drivers := make([]domain.DriverRecord, 0, len(envelope.MRData.DriverTable.Drivers))
	for _, upstream := range envelope.MRData.DriverTable.Drivers {
		drivers = append(drivers, normalizeDriver(upstream))
	}

	s.logger.WithField("drivers", len(drivers)).Debug("Fetched drivers from race statistics API")
	return drivers
}

// getJSON performs one GET against the API and decodes the body, mapping
// failures onto the upstream error taxonomy.
func (s *Service) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.NewInternalError("failed to build race statistics API request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.NewTimeoutError(
				fmt.Sprintf("race statistics API did not respond within %s", s.timeout), err)
		}
		return errors.NewInternalError("race statistics API request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.NewHTTPError(
			fmt.Sprintf("race statistics API returned status %d", resp.StatusCode), resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// The deadline can fire while the body is still streaming; that is a
		// timeout, not a malformed envelope.
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.NewTimeoutError(
				fmt.Sprintf("race statistics API did not respond within %s", s.timeout), err)
		}
		return errors.NewMalformedResponseError("failed to decode race statistics API response", err)
	}
	return nil
}

// normalizeTeam maps an upstream constructor row into a TeamRecord. The
// teams endpoint carries no stats and no rosters, so those default to zero.
func normalizeTeam(upstream upstreamTeam) domain.TeamRecord {
	slug := domain.Slugify(upstream.Name)
	return domain.TeamRecord{
		ID:          slug,
		Name:        upstream.Name,
		Country:     upstream.Nationality,
		LogoRef:     "/assets/logos/" + slug + ".png",
		AccentColor: domain.TeamAccentColor(upstream.Name),
		WebsiteURL:  upstream.URL,
		Drivers:     []domain.DriverRecord{},
	}
}

// normalizeDriver maps an upstream driver row into a DriverRecord. The
// drivers endpoint carries no performance stats, so those default to zero.
func normalizeDriver(upstream upstreamDriver) domain.DriverRecord {
	name := strings.TrimSpace(upstream.GivenName + " " + upstream.FamilyName)
	id := upstream.DriverID
	if id == "" {
		id = domain.Slugify(name)
	}
	return domain.DriverRecord{
		ID:          id,
		Name:        name,
		Number:      upstream.PermanentNumber,
		Nationality: upstream.Nationality,
		ImageRef:    "/assets/drivers/" + id + ".png",
	}
}
