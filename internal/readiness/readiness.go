// Package readiness scores how complete and fundable a profile is.
// It is a weighted point tally with no interaction with the ranking
// core: basic info 20, project 30, organization 25, credentials 25.
package readiness

import (
	"sort"

	"github.com/david/grant-match/internal/models"
)

const maxImprovements = 5

// Score computes the 0-100 readiness score plus per-category breakdown,
// the top suggested improvements, and the profile's strong areas.
func Score(profile *models.Profile) models.ReadinessScore {
	categoryScores := map[string]int{}
	var improvements []models.Improvement
	var strongAreas []string

	basicScore := 0
	if profile.UserType != "" {
		basicScore += 5
	}
	if len(profile.Domains) > 0 {
		basicScore += 5
	}
	if len(profile.Domains) >= 2 {
		basicScore += 5
	}
	if profile.Location.Country != "" && profile.Location.State != nil {
		basicScore += 5
	}
	categoryScores["basic_info"] = basicScore

	if basicScore >= 15 {
		strongAreas = append(strongAreas, "Complete basic profile information")
	}
	if len(profile.Domains) < 2 {
		improvements = append(improvements, models.Improvement{
			Area:       "Domains",
			PointsGain: 5,
			Action:     "Add at least 2 focus domains to improve matching",
		})
	}

	projectScore := 0
	if profile.Project.Title != "" {
		projectScore += 5
	}
	if len(profile.Project.Description) > 50 {
		projectScore += 10
	}
	if len(profile.Project.Description) > 200 {
		projectScore += 5
	}
	if len(profile.Project.Keywords) >= 3 {
		projectScore += 5
	}
	if profile.Project.FundingNeeded > 0 {
		projectScore += 5
	}
	categoryScores["project_details"] = projectScore

	if projectScore >= 25 {
		strongAreas = append(strongAreas, "Strong project description")
	}
	if len(profile.Project.Description) < 200 {
		improvements = append(improvements, models.Improvement{
			Area:       "Project Description",
			PointsGain: 10,
			Action:     "Expand project description to 200+ characters for better matching",
		})
	}
	if len(profile.Project.Keywords) < 3 {
		improvements = append(improvements, models.Improvement{
			Area:       "Keywords",
			PointsGain: 5,
			Action:     "Add at least 3 project keywords",
		})
	}

	orgScore := 0
	if profile.Organization.Type != "" {
		orgScore += 5
	}
	if profile.Organization.Registered {
		orgScore += 10
	}
	if profile.Organization.TeamSize >= 2 {
		orgScore += 5
	}
	if profile.Organization.FoundingDate != nil {
		orgScore += 5
	}
	categoryScores["organization"] = orgScore

	if orgScore >= 20 {
		strongAreas = append(strongAreas, "Established organization status")
	}
	if !profile.Organization.Registered {
		improvements = append(improvements, models.Improvement{
			Area:       "Registration",
			PointsGain: 10,
			Action:     "Register your company/organization to unlock more grants",
		})
	}

	credScore := 0
	if len(profile.Credentials.PreviousGrants) > 0 {
		credScore += 10
	}
	if profile.Credentials.Publications > 0 {
		credScore += 8
	}
	if profile.Credentials.Patents > 0 {
		credScore += 7
	}
	categoryScores["credentials"] = credScore

	if credScore >= 15 {
		strongAreas = append(strongAreas, "Strong credentials and track record")
	}
	if len(profile.Credentials.PreviousGrants) == 0 {
		improvements = append(improvements, models.Improvement{
			Area:       "Previous Grants",
			PointsGain: 10,
			Action:     "List any previous grants received (even small ones)",
		})
	}
	if profile.Credentials.Publications == 0 {
		improvements = append(improvements, models.Improvement{
			Area:       "Publications",
			PointsGain: 8,
			Action:     "Add publication count to boost credibility",
		})
	}

	overall := 0
	for _, s := range categoryScores {
		overall += s
	}

	sort.SliceStable(improvements, func(a, b int) bool {
		return improvements[a].PointsGain > improvements[b].PointsGain
	})
	if len(improvements) > maxImprovements {
		improvements = improvements[:maxImprovements]
	}

	return models.ReadinessScore{
		OverallScore:   overall,
		CategoryScores: categoryScores,
		Improvements:   improvements,
		StrongAreas:    strongAreas,
	}
}
