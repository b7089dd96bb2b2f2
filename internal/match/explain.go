package match

import (
	"fmt"
	"strings"

	"github.com/david/grant-match/internal/models"
)

// Caps on the explanation lists. Each list is a fixed-order prefix:
// reasons are appended in declaration order and then truncated, never
// reordered, so which reasons survive is deterministic.
const (
	maxWhyMatched  = 4
	maxActionItems = 3
	maxConcerns    = 2
)

// Explain turns the sub-scores plus profile/grant content into ordered,
// capped lists of human-readable reasons and concerns. It is a pure
// function and must stay consistent with what Match computes for the
// same inputs.
func Explain(profile *models.Profile, grant *models.Grant, semanticScore, domainScore, eligibilityScore float64, issues, actions []string) models.Explanation {
	var why []string

	if semanticScore > 0.7 {
		why = append(why, fmt.Sprintf("Your project description strongly aligns with this grant's focus on %s",
			strings.Join(prefix(grant.FocusAreas, 2), ", ")))
	} else if semanticScore > 0.4 {
		why = append(why, fmt.Sprintf("Your project has good alignment with %s's objectives", grant.Name))
	}

	overlap := domainOverlap(profile, grant)
	if domainScore >= 1.0 {
		why = append(why, fmt.Sprintf("Perfect domain match: %s", strings.Join(profile.Domains, ", ")))
	} else if domainScore > 0.5 {
		why = append(why, fmt.Sprintf("Strong domain overlap in %s", strings.Join(overlap, ", ")))
	} else if len(overlap) > 0 {
		why = append(why, fmt.Sprintf("Domain overlap in %s", strings.Join(overlap, ", ")))
	}

	if contains(grant.Eligibility.Locations, profile.Location.Country) || contains(grant.Eligibility.Locations, "Global") {
		if profile.Location.State != nil {
			place := *profile.Location.State
			if profile.Location.City != nil {
				place = *profile.Location.City
			}
			why = append(why, fmt.Sprintf("Your location (%s) may give regional advantage", place))
		}
	}

	if contains(grant.Eligibility.Stages, profile.Stage) {
		if profile.Stage == "prototype" || profile.Stage == "registered" {
			why = append(why, fmt.Sprintf("Your %s stage is ideal for this grant", profile.Stage))
		}
	}

	if profile.Project.FundingNeeded <= grant.Amount {
		why = append(why, fmt.Sprintf("Grant amount (%s%d) covers your funding need", currencySymbol(grant.Currency), grant.Amount))
	}

	if profile.Credentials.Publications > 0 {
		why = append(why, fmt.Sprintf("Your %d publications strengthen your application", profile.Credentials.Publications))
	}
	if profile.Credentials.Patents > 0 {
		why = append(why, fmt.Sprintf("Your %d patent(s) demonstrate innovation", profile.Credentials.Patents))
	}
	if len(profile.Credentials.PreviousGrants) > 0 {
		why = append(why, "Previous grant experience improves credibility")
	}

	concerns := []string{}
	if eligibilityScore < 0.8 {
		concerns = prefix(issues, maxConcerns)
	}

	return models.Explanation{
		WhyMatched:          prefix(why, maxWhyMatched),
		ActionItems:         prefix(actions, maxActionItems),
		EligibilityConcerns: concerns,
	}
}

// prefix returns at most n leading elements, never nil so the JSON
// encodes as an empty array rather than null.
func prefix(list []string, n int) []string {
	if len(list) > n {
		list = list[:n]
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func currencySymbol(currency string) string {
	switch currency {
	case "INR":
		return "₹"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	default:
		return "$"
	}
}
