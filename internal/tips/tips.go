// Package tips generates tailored application guidance for a single
// profile/grant pair: strengths to emphasize, talking points, concerns
// to address, and a competitiveness estimate.
package tips

import (
	"fmt"
	"strings"

	"github.com/david/grant-match/internal/models"
	"github.com/david/grant-match/internal/policy"
)

const (
	maxKeyStrengths  = 5
	maxTalkingPoints = 4
	maxConcerns      = 4
)

// Generate produces application tips for a grant the profile already
// matched against. matchScore must be the score Match computed for this
// pair so the competitiveness tier agrees with the ranking.
func Generate(profile *models.Profile, grant *models.Grant, matchScore int, pol *policy.Policy) models.ApplicationTips {
	if pol == nil {
		pol = policy.Default()
	}

	var keyStrengths, talkingPoints, concerns []string

	overlap := overlapDomains(profile.Domains, grant.FocusAreas)
	for _, domain := range prefix(overlap, 2) {
		keyStrengths = append(keyStrengths,
			fmt.Sprintf("Emphasize your %s expertise - this grant prioritizes %s innovation", domain, domain))
	}

	if profile.Location.City != nil || profile.Location.State != nil {
		place := ""
		if profile.Location.City != nil {
			place = *profile.Location.City
		} else {
			place = *profile.Location.State
		}
		if containsStr(grant.Eligibility.Locations, profile.Location.Country) || containsStr(grant.Eligibility.Locations, "Global") {
			keyStrengths = append(keyStrengths,
				fmt.Sprintf("Mention your %s location - regional presence can strengthen your application", place))
		}
	}

	switch profile.Stage {
	case "prototype":
		keyStrengths = append(keyStrengths, "Highlight your working prototype - demonstrates execution capability")
	case "registered":
		keyStrengths = append(keyStrengths, "Emphasize your registered status - shows commitment and legitimacy")
	case "revenue":
		keyStrengths = append(keyStrengths, "Showcase your revenue traction - proves market validation")
	}

	if profile.Organization.TeamSize >= 3 {
		keyStrengths = append(keyStrengths,
			fmt.Sprintf("Highlight your team of %d - shows capacity to execute", profile.Organization.TeamSize))
	}

	if profile.Credentials.Publications > 0 {
		keyStrengths = append(keyStrengths,
			fmt.Sprintf("Reference your %d publications to establish credibility", profile.Credentials.Publications))
	}
	if profile.Credentials.Patents > 0 {
		keyStrengths = append(keyStrengths,
			fmt.Sprintf("Mention your %d patent(s) to demonstrate IP protection", profile.Credentials.Patents))
	}
	if len(profile.Credentials.PreviousGrants) > 0 {
		keyStrengths = append(keyStrengths, "Cite previous grant success to prove track record")
	}

	if profile.Project.Title != "" {
		talkingPoints = append(talkingPoints,
			fmt.Sprintf("Our solution, %s, directly addresses the grant's focus on %s",
				profile.Project.Title, strings.Join(prefix(grant.FocusAreas, 2), ", ")))
	}
	if profile.Project.FundingNeeded > 0 {
		goal := "scale operations"
		if profile.Stage == "prototype" {
			goal = "complete development"
		}
		talkingPoints = append(talkingPoints,
			fmt.Sprintf("We're seeking $%d to %s within %s", profile.Project.FundingNeeded, goal, profile.Project.Timeline))
	}
	if len(grant.FocusAreas) > 0 {
		talkingPoints = append(talkingPoints,
			fmt.Sprintf("Expected impact aligns with %s's mission of supporting %s innovation",
				grant.Organization, strings.ToLower(grant.FocusAreas[0])))
	}

	if !profile.Organization.Registered && grant.Eligibility.RequiresRegistration {
		concerns = append(concerns, "You're pre-registration - clearly state your incorporation timeline in the application")
	}
	if profile.Organization.TeamSize < 2 {
		concerns = append(concerns, "Single founder - emphasize advisors or planned hires to show team growth potential")
	}
	if len(profile.Credentials.PreviousGrants) == 0 {
		concerns = append(concerns, "No previous grants - highlight relevant experience or pilot projects instead")
	}
	if profile.Stage == "idea" {
		concerns = append(concerns, "Early stage - focus on market research, team expertise, and execution roadmap")
	}
	if grant.CompetitionLevel == "high" {
		concerns = append(concerns,
			fmt.Sprintf("High competition (%d+ past winners) - ensure unique differentiation", grant.PastWinners))
	}

	tier := pol.Competitiveness.TierFor(matchScore)
	// The top tier assumes the grant itself is winnable; hard grants are
	// demoted one tier regardless of match score.
	if grant.Difficulty == "hard" && len(pol.Competitiveness.Tiers) > 1 && tier == pol.Competitiveness.Tiers[0] {
		tier = pol.Competitiveness.Tiers[1]
	}
	estimated := grant.SuccessRate * tier.Multiplier
	if estimated > pol.Competitiveness.EstimateCap {
		estimated = pol.Competitiveness.EstimateCap
	}

	return models.ApplicationTips{
		KeyStrengths:         prefix(keyStrengths, maxKeyStrengths),
		TalkingPoints:        prefix(talkingPoints, maxTalkingPoints),
		Concerns:             prefix(concerns, maxConcerns),
		Competitiveness:      tier.Label,
		EstimatedSuccessRate: estimated,
	}
}

// overlapDomains returns lowercased tags present in both lists, in
// profile order.
func overlapDomains(domains, focusAreas []string) []string {
	areas := make(map[string]bool, len(focusAreas))
	for _, a := range focusAreas {
		areas[strings.ToLower(a)] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, d := range domains {
		l := strings.ToLower(d)
		if areas[l] && !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

func prefix(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func containsStr(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
