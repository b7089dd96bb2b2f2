package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/david/grant-match/internal/models"
)

func testGrants() []models.Grant {
	return []models.Grant{
		{
			ID:           "ai-health",
			Name:         "AI Health Grant",
			Organization: "HealthTech Foundation",
			Description:  "Funding for artificial intelligence in healthcare diagnostics",
			Amount:       100000,
			Deadline:     "2026-11-30",
			FocusAreas:   []string{"AI", "Healthcare"},
			SuccessRate:  0.2,
			Difficulty:   "medium",
			Eligibility: models.Eligibility{
				UserTypes: []string{"startup"},
				Stages:    []string{"prototype", "registered"},
				Locations: []string{"Global"},
			},
		},
		{
			ID:           "agri-tech",
			Name:         "AgriTech Fund",
			Organization: "Rural Innovation Trust",
			Description:  "Support for agriculture technology and farming tools",
			Amount:       50000,
			Deadline:     "2026-09-15",
			FocusAreas:   []string{"Agriculture"},
			SuccessRate:  0.3,
			Difficulty:   "easy",
			Eligibility: models.Eligibility{
				Locations: []string{"Global"},
			},
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(testGrants(), nil, nil)
}

func profileBody() string {
	return `{
		"user_type": "startup",
		"domains": ["AI", "Healthcare"],
		"location": {"country": "India"},
		"stage": "prototype",
		"organization": {"type": "company", "team_size": 3, "registered": true},
		"project": {
			"title": "Diagnostic AI",
			"description": "Artificial intelligence for healthcare diagnostics in rural clinics",
			"keywords": ["ai", "healthcare", "diagnostics"],
			"funding_needed": 50000
		}
	}`
}

func doJSON(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doJSON(newTestServer(t), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health returned %d", rec.Code)
	}
}

func TestCreateAndFetchProfile(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/api/v1/profiles", profileBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create profile returned %d: %s", rec.Code, rec.Body.String())
	}
	var created models.ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ProfileID == "" {
		t.Fatal("create response missing profile_id")
	}
	if created.CompletenessScore <= 0 {
		t.Fatalf("completeness score %d, want > 0", created.CompletenessScore)
	}

	rec = doJSON(s, http.MethodGet, "/api/v1/profiles/"+created.ProfileID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get profile returned %d", rec.Code)
	}

	rec = doJSON(s, http.MethodGet, "/api/v1/profiles/nonexistent", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing profile returned %d, want 404", rec.Code)
	}
}

func TestMatchByStoredProfile(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/api/v1/profiles", profileBody())
	var created models.ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	rec = doJSON(s, http.MethodPost, "/api/v1/match?profile_id="+created.ProfileID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("match returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.MatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode match response: %v", err)
	}
	if resp.TotalMatches != 2 {
		t.Fatalf("got %d matches, want 2", resp.TotalMatches)
	}
	if resp.Matches[0].Grant.ID != "ai-health" {
		t.Fatalf("top match %s, want ai-health", resp.Matches[0].Grant.ID)
	}
	for i := 1; i < len(resp.Matches); i++ {
		if resp.Matches[i].MatchScore > resp.Matches[i-1].MatchScore {
			t.Fatalf("matches not sorted by score at %d", i)
		}
	}
}

func TestMatchInlineProfileAndTopK(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/api/v1/match?top_k=1", profileBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("match returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.MatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode match response: %v", err)
	}
	if resp.TotalMatches != 1 {
		t.Fatalf("top_k=1 returned %d matches", resp.TotalMatches)
	}
}

func TestAnalyzeGrant(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(s, http.MethodPost, "/api/v1/profiles", profileBody())
	var created models.ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	rec = doJSON(s, http.MethodPost, "/api/v1/grants/ai-health/analyze?profile_id="+created.ProfileID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze returned %d: %s", rec.Code, rec.Body.String())
	}
	var tipsResp models.ApplicationTips
	if err := json.Unmarshal(rec.Body.Bytes(), &tipsResp); err != nil {
		t.Fatalf("decode tips: %v", err)
	}
	if tipsResp.Competitiveness == "" {
		t.Fatal("tips missing competitiveness tier")
	}

	rec = doJSON(s, http.MethodPost, "/api/v1/grants/nope/analyze?profile_id="+created.ProfileID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown grant returned %d, want 404", rec.Code)
	}
}

func TestTimelineSortedByDeadline(t *testing.T) {
	rec := doJSON(newTestServer(t), http.MethodGet, "/api/v1/timeline", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("timeline returned %d", rec.Code)
	}
	var out []models.Grant
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode timeline: %v", err)
	}
	if out[0].ID != "agri-tech" {
		t.Fatalf("earliest deadline first, got %s", out[0].ID)
	}
}

func TestAdminReload(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "test-secret")

	reloaded := false
	s := NewServer(testGrants(), nil, func() ([]models.Grant, error) {
		reloaded = true
		return testGrants()[:1], nil
	})

	rec := doJSON(s, http.MethodPost, "/api/v1/admin/reload", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated reload returned %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reload", nil)
	req.Header.Set("X-Admin-Secret", "test-secret")
	out := httptest.NewRecorder()
	s.Echo.ServeHTTP(out, req)
	if out.Code != http.StatusOK {
		t.Fatalf("authenticated reload returned %d: %s", out.Code, out.Body.String())
	}
	if !reloaded {
		t.Fatal("corpus loader was not invoked")
	}
	if n := len(s.Matcher().Grants()); n != 1 {
		t.Fatalf("matcher has %d grants after reload, want 1", n)
	}
}
