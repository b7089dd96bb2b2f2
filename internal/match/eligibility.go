package match

import (
	"fmt"
	"strings"

	"github.com/david/grant-match/internal/models"
)

// EvaluateEligibility applies a grant's constraint set against a
// profile. It starts at 1.0 and applies independent penalties in a
// fixed order, accumulating issues and action items as constraints
// trigger. The result is clamped at 0; deductions never push it above 1.
func EvaluateEligibility(profile *models.Profile, elig *models.Eligibility) (float64, []string, []string) {
	score := 1.0
	var issues, actions []string

	if !contains(elig.UserTypes, profile.UserType) {
		score -= 0.25
		issues = append(issues, fmt.Sprintf("User type '%s' not in allowed types: %s",
			profile.UserType, strings.Join(elig.UserTypes, ", ")))
	}

	if !contains(elig.Stages, profile.Stage) {
		score -= 0.2
		issues = append(issues, fmt.Sprintf("Stage '%s' not eligible - requires: %s",
			profile.Stage, strings.Join(elig.Stages, ", ")))
		if contains(elig.Stages, "registered") && (profile.Stage == "idea" || profile.Stage == "prototype") {
			actions = append(actions, "Register your company to become eligible")
		}
	}

	if !contains(elig.Locations, "Global") && !contains(elig.Locations, profile.Location.Country) {
		score -= 0.3
		issues = append(issues, fmt.Sprintf("Location '%s' not in eligible regions: %s",
			profile.Location.Country, strings.Join(elig.Locations, ", ")))
	}

	if !contains(elig.OrganizationTypes, profile.Organization.Type) {
		score -= 0.15
		issues = append(issues, fmt.Sprintf("Organization type '%s' not eligible", profile.Organization.Type))
	}

	if profile.Organization.TeamSize < elig.MinTeamSize {
		score -= 0.1
		issues = append(issues, fmt.Sprintf("Team size %d is below minimum %d",
			profile.Organization.TeamSize, elig.MinTeamSize))
		actions = append(actions, fmt.Sprintf("Grow team to at least %d members", elig.MinTeamSize))
	}

	if elig.RequiresRegistration && !profile.Organization.Registered {
		score -= 0.2
		issues = append(issues, "Grant requires registered entity")
		actions = append(actions, "Complete company/organization registration")
	}

	if score < 0 {
		score = 0
	}
	return score, issues, actions
}

// StatusForScore maps a continuous eligibility score to a status using
// the standard thresholds. Kept separate from the deduction algorithm
// so the thresholds can change independently of the penalty weights.
func StatusForScore(score float64) string {
	return StatusForThresholds(score, 0.8, 0.5)
}

// StatusForThresholds is StatusForScore with caller-supplied cutoffs,
// for policies that retune the thresholds.
func StatusForThresholds(score, eligible, needsAction float64) string {
	switch {
	case score >= eligible:
		return models.StatusEligible
	case score >= needsAction:
		return models.StatusNeedsAction
	default:
		return models.StatusNotEligible
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
