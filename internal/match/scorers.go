package match

import (
	"strings"

	"github.com/david/grant-match/internal/models"
)

// DomainScore measures lexical overlap between the profile's domain
// tags and the grant's focus areas, case-insensitively: intersection
// size over the larger of the two sets. Missing data on either side is
// not penalized, it yields the neutral 0.5.
func DomainScore(profile *models.Profile, grant *models.Grant) float64 {
	userDomains := lowerSet(profile.Domains)
	grantAreas := lowerSet(grant.FocusAreas)
	if len(userDomains) == 0 || len(grantAreas) == 0 {
		return 0.5
	}

	overlap := 0
	for d := range userDomains {
		if grantAreas[d] {
			overlap++
		}
	}
	max := len(userDomains)
	if len(grantAreas) > max {
		max = len(grantAreas)
	}
	return float64(overlap) / float64(max)
}

// StrategicScore is a heuristic bonus for stage, location and funding
// alignment beyond raw eligibility. Starts at 0.5, capped at 1.0.
func StrategicScore(profile *models.Profile, grant *models.Grant) float64 {
	score := 0.5
	if contains(grant.Eligibility.Stages, profile.Stage) &&
		(profile.Stage == "prototype" || profile.Stage == "registered") {
		score += 0.2
	}
	if contains(grant.Eligibility.Locations, profile.Location.Country) {
		score += 0.15
	}
	if grant.Amount >= profile.Project.FundingNeeded && profile.Project.FundingNeeded > 0 {
		score += 0.15
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// domainOverlap returns the lowercased tags present in both sets, in
// profile-domain order so explanation wording is deterministic.
func domainOverlap(profile *models.Profile, grant *models.Grant) []string {
	grantAreas := lowerSet(grant.FocusAreas)
	seen := make(map[string]bool)
	var out []string
	for _, d := range profile.Domains {
		l := strings.ToLower(d)
		if grantAreas[l] && !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

func lowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
