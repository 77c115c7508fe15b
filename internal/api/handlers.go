package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"github.com/piwi3910/ShelfSort/internal/engine"
	"github.com/piwi3910/ShelfSort/internal/model"
)

// maxShelves bounds the shelves one request may allocate.
const maxShelves = 1000

type sortRequest struct {
	Games    []model.Game       `json:"games"`
	Settings model.SortSettings `json:"settings"`

	// Preset names an inventory preset whose bounds replace the shelf size.
	Preset string `json:"preset,omitempty"`
}

type scenarioRequest struct {
	Name string `json:"name"`

	// Settings overlay the request's base settings.
	Settings json.RawMessage `json:"settings,omitempty"`
}

type compareRequest struct {
	sortRequest
	Scenarios []scenarioRequest `json:"scenarios,omitempty"`
}

type placedGame struct {
	model.Game
	Orientation model.Placement `json:"orientation"`
}

type shelfView struct {
	Index     int          `json:"index"`
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	UsedDepth float64      `json:"used_depth"`
	Games     []placedGame `json:"games"`
}

type sortResponse struct {
	Settings    model.SortSettings `json:"settings"`
	Shelves     []shelfView        `json:"shelves"`
	ShelvesUsed int                `json:"shelves_used"`
	GameCount   int                `json:"game_count"`
	FillPercent float64            `json:"fill_percent"`
}

type scenarioView struct {
	Name        string             `json:"name"`
	Settings    model.SortSettings `json:"settings"`
	OK          bool               `json:"ok"`
	ShelvesUsed int                `json:"shelves_used"`
	FillPercent float64            `json:"fill_percent"`
	Error       *APIError          `json:"error,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, r, healthResponse{
		Status:  "healthy",
		Version: s.version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, r, s.inventory.Shelves)
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	req := sortRequest{Settings: model.DefaultSettings()}
	if !s.decode(w, r, &req) {
		return
	}
	games, ok := s.prepare(w, r, &req)
	if !ok {
		return
	}

	log := s.log.With("request_id", GetRequestID(r.Context()))
	result, err := engine.New(req.Settings, engine.WithLogger(log.ZapLogger())).Run(games)
	if err != nil {
		status, apiErr := sortErrorStatus(err)
		log.Warn("sort failed", "games", len(games), "code", apiErr.Code, "game", apiErr.Game)
		writeError(w, r, status, apiErr)
		return
	}

	log.Info("sort completed",
		"games", result.GameCount(),
		"shelves_used", result.ShelvesUsed(),
		"placement", req.Settings.Placement.String(),
		"rotation", req.Settings.Rotation.String(),
	)
	writeSuccess(w, r, newSortResponse(result))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	req := compareRequest{sortRequest: sortRequest{Settings: model.DefaultSettings()}}
	if !s.decode(w, r, &req) {
		return
	}
	games, ok := s.prepare(w, r, &req.sortRequest)
	if !ok {
		return
	}

	scenarios, err := buildScenarios(req.Settings, req.Scenarios)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, &APIError{Code: CodeInvalidRequest, Message: err.Error()})
		return
	}

	log := s.log.With("request_id", GetRequestID(r.Context()))
	results := engine.CompareScenarios(scenarios, games, engine.WithLogger(log.ZapLogger()))

	views := make([]scenarioView, 0, len(results))
	for _, res := range results {
		v := scenarioView{
			Name:        res.Scenario.Name,
			Settings:    res.Scenario.Settings,
			OK:          res.OK(),
			ShelvesUsed: res.ShelvesUsed,
			FillPercent: res.FillPercent,
		}
		if res.Err != nil {
			v.Error = errorBody(res.Err)
		}
		views = append(views, v)
	}

	log.Info("comparison completed", "games", len(games), "scenarios", len(views))
	writeSuccess(w, r, views)
}

// decode reads the JSON body into v and answers 400 or 413 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, &APIError{
				Code:    CodeInvalidRequest,
				Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			})
			return false
		}
		writeError(w, r, http.StatusBadRequest, &APIError{
			Code:    CodeInvalidRequest,
			Message: fmt.Sprintf("invalid request body: %v", err),
		})
		return false
	}
	return true
}

// prepare applies the preset, validates the settings and games, and gives
// every game an ID. It answers 400 and returns false when the request is
// unusable.
func (s *Server) prepare(w http.ResponseWriter, r *http.Request, req *sortRequest) ([]model.Game, bool) {
	if req.Preset != "" {
		preset := s.inventory.FindByName(req.Preset)
		if preset == nil {
			preset = s.inventory.FindByID(req.Preset)
		}
		if preset == nil {
			writeError(w, r, http.StatusBadRequest, &APIError{
				Code:    CodeInvalidSettings,
				Message: fmt.Sprintf("unknown shelf preset %q", req.Preset),
			})
			return nil, false
		}
		preset.ApplyTo(&req.Settings)
	}

	if err := req.Settings.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, &APIError{Code: CodeInvalidSettings, Message: err.Error()})
		return nil, false
	}
	if req.Settings.ShelfCount > maxShelves {
		writeError(w, r, http.StatusBadRequest, &APIError{
			Code:    CodeInvalidSettings,
			Message: fmt.Sprintf("at most %d shelves per request", maxShelves),
		})
		return nil, false
	}

	if verrs := validateGames(req.Games); len(verrs) > 0 {
		writeError(w, r, http.StatusBadRequest, &APIError{
			Code:             CodeValidation,
			Message:          "Request validation failed",
			ValidationErrors: verrs,
		})
		return nil, false
	}

	games := make([]model.Game, len(req.Games))
	for i, g := range req.Games {
		if g.Genre == "" {
			g.Genre = model.GenreOther
		}
		if g.ID == "" {
			g = model.NewGame(g.Name, g.Genre, g.Width, g.Height, g.Depth, g.Publisher)
		}
		games[i] = g
	}
	return games, true
}

func validateGames(games []model.Game) []ValidationError {
	var errs []ValidationError
	for i, g := range games {
		if strings.TrimSpace(g.Name) == "" {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("games[%d].name", i), Message: "name is required"})
		}
		dims := []struct {
			name  string
			value float64
		}{{"width", g.Width}, {"height", g.Height}, {"depth", g.Depth}}
		for _, d := range dims {
			if d.value <= 0 {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("games[%d].%s", i, d.name),
					Message: "must be positive",
				})
			}
		}
	}
	return errs
}

// buildScenarios overlays each requested scenario on the base settings, or
// falls back to every placement and rotation combination.
func buildScenarios(base model.SortSettings, reqs []scenarioRequest) ([]engine.ComparisonScenario, error) {
	if len(reqs) == 0 {
		return engine.BuildDefaultScenarios(base), nil
	}
	scenarios := make([]engine.ComparisonScenario, 0, len(reqs))
	for i, sr := range reqs {
		settings := base
		if len(sr.Settings) > 0 {
			if err := json.Unmarshal(sr.Settings, &settings); err != nil {
				return nil, fmt.Errorf("scenario %d: %w", i, err)
			}
		}
		if settings.ShelfCount > maxShelves {
			return nil, fmt.Errorf("scenario %d: at most %d shelves per request", i, maxShelves)
		}
		name := sr.Name
		if name == "" {
			name = fmt.Sprintf("%s / %s", settings.Placement, settings.Rotation)
		}
		scenarios = append(scenarios, engine.ComparisonScenario{Name: name, Settings: settings})
	}
	return scenarios, nil
}

func newSortResponse(result model.SortResult) sortResponse {
	shelves := make([]shelfView, len(result.Shelves))
	for i, sh := range result.Shelves {
		games := make([]placedGame, len(sh.Games))
		for j, g := range sh.Games {
			games[j] = placedGame{Game: g, Orientation: sh.Orientation(j, result.Settings.Placement)}
		}
		shelves[i] = shelfView{
			Index:     i + 1,
			Width:     sh.Width,
			Height:    sh.Height,
			UsedDepth: sh.UsedDepth(),
			Games:     games,
		}
	}
	return sortResponse{
		Settings:    result.Settings,
		Shelves:     shelves,
		ShelvesUsed: result.ShelvesUsed(),
		GameCount:   result.GameCount(),
		FillPercent: result.FillPercent(),
	}
}
