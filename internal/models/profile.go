package models

type Location struct {
	Country string  `json:"country"`
	State   *string `json:"state,omitempty"`
	City    *string `json:"city,omitempty"`
}

type Organization struct {
	Type         string  `json:"type"` // company, individual, institute, ngo
	Registered   bool    `json:"registered"`
	TeamSize     int     `json:"team_size"`
	FoundingDate *string `json:"founding_date,omitempty"`
}

type Project struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Keywords      []string `json:"keywords"`
	FundingNeeded int      `json:"funding_needed"`
	Timeline      string   `json:"timeline"`
}

type Credentials struct {
	PreviousGrants []string `json:"previous_grants"`
	Publications   int      `json:"publications"`
	Patents        int      `json:"patents"`
}

// Profile is the applicant record. It is mutable only by its owning
// request; the matching engine never writes to it.
type Profile struct {
	ID           string       `json:"id,omitempty"`
	UserType     string       `json:"user_type"` // startup, researcher, ngo, student
	Domains      []string     `json:"domains"`
	Location     Location     `json:"location"`
	Stage        string       `json:"stage"` // idea, prototype, registered, revenue, scaling
	Organization Organization `json:"organization"`
	Project      Project      `json:"project"`
	Credentials  Credentials  `json:"credentials"`
	CreatedAt    *string      `json:"created_at,omitempty"`
}

type ProfileResponse struct {
	ProfileID         string  `json:"profile_id"`
	CompletenessScore int     `json:"completeness_score"`
	Profile           Profile `json:"profile"`
}

// Improvement is one suggested profile change with its point value.
type Improvement struct {
	Area       string `json:"area"`
	PointsGain int    `json:"points_gain"`
	Action     string `json:"action"`
}

type ReadinessScore struct {
	OverallScore   int            `json:"overall_score"`
	CategoryScores map[string]int `json:"category_scores"`
	Improvements   []Improvement  `json:"improvements"`
	StrongAreas    []string       `json:"strong_areas"`
}
