package handler

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"

	"f1grid/internal/domain"
	"f1grid/internal/service"
	"github.com/go-chi/chi/v5"
)

type TeamHandler struct {
	teamService *service.TeamService
}

func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// TeamListResponse is the payload for the team grid. Degraded is true when
// every source failed and the list is empty; the front-end renders its error
// banner off that.
type TeamListResponse struct {
	Teams    []domain.TeamRecord `json:"teams"`
	Count    int                 `json:"count"`
	Degraded bool                `json:"degraded"`
}

// DriverListResponse is the payload for the flattened driver roster
type DriverListResponse struct {
	Drivers  []domain.FlatDriver `json:"drivers"`
	Count    int                 `json:"count"`
	Degraded bool                `json:"degraded"`
}

// StandingsResponse carries both derived standings tables
type StandingsResponse struct {
	DriverStandings      []domain.FlatDriver `json:"driverStandings"`
	ConstructorStandings []domain.TeamRecord `json:"constructorStandings"`
	Degraded             bool                `json:"degraded"`
}

// ListTeams handles GET /api/v1/teams?q=...
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	teams := h.teamService.FetchTeamsData(ctx)
	degraded := len(teams) == 0

	if q := r.URL.Query().Get("q"); q != "" {
		teams = domain.FilterTeams(teams, q)
	}

	response := TeamListResponse{
		Teams:    teams,
		Count:    len(teams),
		Degraded: degraded,
	}

	etag := h.generateETag(response)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=60")

	h.respondJSON(w, http.StatusOK, response)
}

// GetTeam handles GET /api/v1/teams/{teamId}
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamId")

	if teamID == "" {
		h.respondError(w, http.StatusBadRequest, "Team ID is required")
		return
	}

	teams := h.teamService.FetchTeamsData(ctx)
	team, ok := domain.FindTeam(teams, teamID)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Team not found")
		return
	}

	h.respondJSON(w, http.StatusOK, team)
}

// ListDrivers handles GET /api/v1/drivers
func (h *TeamHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	drivers := h.teamService.FetchDriversData(ctx)

	h.respondJSON(w, http.StatusOK, DriverListResponse{
		Drivers:  drivers,
		Count:    len(drivers),
		Degraded: len(drivers) == 0,
	})
}

// GetStandings handles GET /api/v1/standings
func (h *TeamHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	teams := h.teamService.FetchTeamsData(ctx)

	h.respondJSON(w, http.StatusOK, StandingsResponse{
		DriverStandings:      domain.DriverStandings(teams),
		ConstructorStandings: domain.ConstructorStandings(teams),
		Degraded:             len(teams) == 0,
	})
}

func (h *TeamHandler) generateETag(data interface{}) string {
	jsonData, _ := json.Marshal(data)
	hash := md5.Sum(jsonData)
	return fmt.Sprintf(`"%x"`, hash)
}

func (h *TeamHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *TeamHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{
		"error": message,
	})
}
