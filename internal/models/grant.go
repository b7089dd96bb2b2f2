package models

// Grant is an immutable-after-load funding opportunity. The corpus owns
// all grants; they are loaded once at process start and read-only after.
type Grant struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Organization     string      `json:"organization"`
	Type             string      `json:"type"` // government, accelerator, foundation, corporate, academic
	Amount           int         `json:"amount"`
	Currency         string      `json:"currency"`
	EquityRequired   bool        `json:"equity_required"`
	Deadline         string      `json:"deadline"`
	Description      string      `json:"description"`
	FullDescription  *string     `json:"full_description,omitempty"`
	FocusAreas       []string    `json:"focus_areas"`
	Eligibility      Eligibility `json:"eligibility"`
	Benefits         []string    `json:"benefits"`
	Difficulty       string      `json:"difficulty"` // easy, medium, hard
	SuccessRate      float64     `json:"success_rate"`
	ApplicationTime  string      `json:"application_time_estimate"`
	CompetitionLevel string      `json:"competition_level"` // low, medium, high
	PastWinners      int         `json:"past_winners"`
	Tags             []string    `json:"tags"`
	Website          string      `json:"website"`
	ContactEmail     *string     `json:"contact_email,omitempty"`
}

// Eligibility is the declarative constraint set embedded in a Grant.
// The Locations set may contain the wildcard "Global" meaning any country.
type Eligibility struct {
	UserTypes             []string `json:"user_types"`
	Stages                []string `json:"stages"`
	Locations             []string `json:"location"`
	OrganizationTypes     []string `json:"organization_types"`
	MinTeamSize           int      `json:"min_team_size"`
	RequiresRegistration  bool     `json:"requires_registration"`
	MaxCompanyAgeYears    *int     `json:"max_company_age_years,omitempty"`
	TechnicalRequirements []string `json:"technical_requirements"`
}

// Eligibility statuses derived from the continuous eligibility score.
const (
	StatusEligible    = "eligible"
	StatusNeedsAction = "needs_action"
	StatusNotEligible = "not_eligible"
)

// Explanation is the human-readable rationale attached to a MatchResult.
// All three lists are fixed-order prefixes of their source lists.
type Explanation struct {
	WhyMatched          []string `json:"why_matched"`
	ActionItems         []string `json:"action_items"`
	EligibilityConcerns []string `json:"eligibility_concerns"`
}

// MatchResult ties one grant to its computed match for a profile.
// Created fresh per match call, never persisted.
type MatchResult struct {
	Grant             *Grant      `json:"grant"`
	MatchScore        int         `json:"match_score"` // 0-100
	EligibilityStatus string      `json:"eligibility_status"`
	EligibilityIssues []string    `json:"eligibility_issues"`
	Explanation       Explanation `json:"explanation"`
	SemanticScore     float64     `json:"semantic_score"`
	DomainScore       float64     `json:"domain_score"`
	EligibilityScore  float64     `json:"eligibility_score"`
	StrategicScore    float64     `json:"strategic_score"`
}

type MatchResponse struct {
	Matches      []MatchResult `json:"matches"`
	TotalFunding int           `json:"total_funding"`
	TotalMatches int           `json:"total_matches"`
	ProfileScore int           `json:"profile_score"`
}

// ApplicationTips is the per-grant analysis payload.
type ApplicationTips struct {
	KeyStrengths         []string `json:"key_strengths"`
	TalkingPoints        []string `json:"talking_points"`
	Concerns             []string `json:"concerns"`
	Competitiveness      string   `json:"competitiveness"` // low, medium, medium-high, high
	EstimatedSuccessRate float64  `json:"estimated_success_rate"`
}
