package api

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/david/grant-match/internal/match"
	"github.com/david/grant-match/internal/models"
	"github.com/david/grant-match/internal/policy"
	"github.com/david/grant-match/internal/profiles"
	"github.com/david/grant-match/internal/readiness"
	"github.com/david/grant-match/internal/tips"
)

// CorpusLoader re-reads the grant corpus for admin-triggered reloads.
type CorpusLoader func() ([]models.Grant, error)

type Server struct {
	Echo     *echo.Echo
	Profiles *profiles.Store
	Policy   *policy.Policy

	// matcher is replaced wholesale on corpus reload; reads take the
	// read lock so an in-flight rebuild never exposes a half-fitted
	// index.
	matcherMu sync.RWMutex
	matcher   *match.Matcher

	loadCorpus CorpusLoader
}

var (
	adminSecretOnce    sync.Once
	adminSecretRuntime string
	adminSecretErr     error
)

func NewServer(grantList []models.Grant, pol *policy.Policy, loader CorpusLoader) *Server {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// CORS: allow frontend origins from env or default to localhost
	allowedOrigins := []string{"http://localhost:5173"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Admin-Secret"},
	}))

	if pol == nil {
		pol = policy.Default()
	}

	s := &Server{
		Echo:       e,
		Profiles:   profiles.NewStore(),
		Policy:     pol,
		matcher:    match.NewMatcher(grantList, pol),
		loadCorpus: loader,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	api := s.Echo.Group("/api/v1")
	api.POST("/profiles", s.handleCreateProfile)
	api.GET("/profiles/:id", s.handleGetProfile)
	api.GET("/profiles/:id/readiness", s.handleReadiness)
	api.POST("/match", s.handleMatch)
	api.GET("/grants", s.handleListGrants)
	api.GET("/grants/:id", s.handleGetGrant)
	api.POST("/grants/:id/analyze", s.handleAnalyzeGrant)
	api.GET("/timeline", s.handleTimeline)
	api.GET("/stats", s.handleStats)

	admin := api.Group("/admin")
	admin.Use(s.adminMiddleware)
	admin.POST("/reload", s.handleReloadCorpus)
}

// Matcher returns the current matcher handle.
func (s *Server) Matcher() *match.Matcher {
	s.matcherMu.RLock()
	defer s.matcherMu.RUnlock()
	return s.matcher
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) handleCreateProfile(c echo.Context) error {
	var profile models.Profile
	if err := c.Bind(&profile); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	stored := s.Profiles.Put(profile)
	score := readiness.Score(&stored)

	return c.JSON(http.StatusCreated, models.ProfileResponse{
		ProfileID:         stored.ID,
		CompletenessScore: score.OverallScore,
		Profile:           stored,
	})
}

func (s *Server) handleGetProfile(c echo.Context) error {
	profile, err := s.Profiles.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found"})
	}

	score := readiness.Score(&profile)
	return c.JSON(http.StatusOK, models.ProfileResponse{
		ProfileID:         profile.ID,
		CompletenessScore: score.OverallScore,
		Profile:           profile,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	profile, err := s.Profiles.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found"})
	}
	return c.JSON(http.StatusOK, readiness.Score(&profile))
}

// handleMatch accepts either a stored profile id (?profile_id=) or an
// inline profile body, matching the corpus against whichever resolves.
func (s *Server) handleMatch(c echo.Context) error {
	var profile models.Profile
	if id := c.QueryParam("profile_id"); id != "" {
		stored, err := s.Profiles.Get(id)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found"})
		}
		profile = stored
	} else if err := c.Bind(&profile); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Either profile_id or profile data must be provided"})
	}

	topK := 0
	if raw := c.QueryParam("top_k"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			topK = parsed
		}
	}

	matches := s.Matcher().Match(&profile, topK)

	totalFunding := 0
	for _, m := range matches {
		if m.MatchScore > 60 {
			totalFunding += m.Grant.Amount
		}
	}

	score := readiness.Score(&profile)
	return c.JSON(http.StatusOK, models.MatchResponse{
		Matches:      matches,
		TotalFunding: totalFunding,
		TotalMatches: len(matches),
		ProfileScore: score.OverallScore,
	})
}

func (s *Server) handleListGrants(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Matcher().Grants())
}

func (s *Server) handleGetGrant(c echo.Context) error {
	grant := s.findGrant(c.Param("id"))
	if grant == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Grant not found"})
	}
	return c.JSON(http.StatusOK, grant)
}

// handleAnalyzeGrant recomputes the match for the given profile so the
// tips' competitiveness tier agrees with what /match reports.
func (s *Server) handleAnalyzeGrant(c echo.Context) error {
	profile, err := s.Profiles.Get(c.QueryParam("profile_id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Profile not found"})
	}

	grantID := c.Param("id")
	grant := s.findGrant(grantID)
	if grant == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Grant not found"})
	}

	matcher := s.Matcher()
	matchScore := 50
	for _, m := range matcher.Match(&profile, len(matcher.Grants())) {
		if m.Grant.ID == grantID {
			matchScore = m.MatchScore
			break
		}
	}

	return c.JSON(http.StatusOK, tips.Generate(&profile, grant, matchScore, s.Policy))
}

func (s *Server) handleTimeline(c echo.Context) error {
	grantList := s.Matcher().Grants()
	sorted := make([]models.Grant, len(grantList))
	copy(sorted, grantList)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Deadline < sorted[b].Deadline
	})
	return c.JSON(http.StatusOK, sorted)
}

func (s *Server) handleStats(c echo.Context) error {
	grantList := s.Matcher().Grants()
	totalFunding := 0
	for _, g := range grantList {
		totalFunding += g.Amount
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"total_grants":  len(grantList),
		"total_funding": totalFunding,
		"profiles":      s.Profiles.Len(),
	})
}

// handleReloadCorpus rebuilds the matcher from a fresh corpus read and
// swaps it in atomically. Concurrent match requests keep reading the
// old index until the swap.
func (s *Server) handleReloadCorpus(c echo.Context) error {
	if s.loadCorpus == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No corpus loader configured"})
	}

	grantList, err := s.loadCorpus()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	rebuilt := match.NewMatcher(grantList, s.Policy)
	s.matcherMu.Lock()
	s.matcher = rebuilt
	s.matcherMu.Unlock()

	log.Printf("Corpus reloaded: %d grants", len(grantList))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "Corpus reloaded",
		"total_grants": len(grantList),
	})
}

func (s *Server) findGrant(id string) *models.Grant {
	grantList := s.Matcher().Grants()
	for i := range grantList {
		if grantList[i].ID == id {
			return &grantList[i]
		}
	}
	return nil
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

func (s *Server) adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret, err := adminSecret()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server admin configuration error"})
		}

		authHeader := c.Request().Header.Get("Authorization")
		adminHeader := c.Request().Header.Get("X-Admin-Secret")

		if adminHeader == secret {
			return next(c)
		}
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
			if authHeader[7:] == secret {
				return next(c)
			}
		}

		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized admin access"})
	}
}

func adminSecret() (string, error) {
	adminSecretOnce.Do(func() {
		secret := strings.TrimSpace(os.Getenv("ADMIN_SECRET"))
		if secret != "" {
			adminSecretRuntime = secret
			return
		}

		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			adminSecretErr = fmt.Errorf("failed to generate ADMIN_SECRET fallback: %w", err)
			return
		}

		adminSecretRuntime = base64.RawURLEncoding.EncodeToString(buf)
		log.Print("ADMIN_SECRET is not set; using ephemeral in-memory fallback secret")
	})

	if adminSecretErr != nil {
		return "", adminSecretErr
	}
	if adminSecretRuntime == "" {
		return "", fmt.Errorf("admin secret unavailable")
	}

	return adminSecretRuntime, nil
}
