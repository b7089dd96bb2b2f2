package match

import (
	"math"
	"sort"
	"strings"

	"github.com/david/grant-match/internal/models"
	"github.com/david/grant-match/internal/policy"
)

// DefaultTopK is how many results Match returns when the caller does
// not ask for a specific count.
const DefaultTopK = 25

// Matcher owns the fitted similarity index for one grant corpus and
// fuses the four sub-scores into ranked MatchResults. The grant slice
// and the index corpus stay index-aligned for the Matcher's lifetime;
// matching a different corpus means constructing a new Matcher and
// swapping the handle.
type Matcher struct {
	grants []models.Grant
	index  *Index
	pol    *policy.Policy
}

// NewMatcher fits the similarity index once over the full grant corpus.
// A nil policy selects the embedded default.
func NewMatcher(grants []models.Grant, pol *policy.Policy) *Matcher {
	if pol == nil {
		pol = policy.Default()
	}
	corpus := make([]string, len(grants))
	for i := range grants {
		corpus[i] = GrantText(&grants[i])
	}
	index := NewIndex()
	if len(corpus) > 0 {
		index.Fit(corpus)
	}
	return &Matcher{grants: grants, index: index, pol: pol}
}

// Grants exposes the corpus the matcher was built from.
func (m *Matcher) Grants() []models.Grant {
	return m.grants
}

// Match scores every grant in the corpus against the profile and
// returns the top-K results sorted by match score descending. The sort
// is stable, so equal-scored grants keep their scan order. Pass
// topK <= 0 for the default.
func (m *Matcher) Match(profile *models.Profile, topK int) []models.MatchResult {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryText := ProfileText(profile)
	similar := m.index.SimilarityToCorpus(queryText)

	results := make([]models.MatchResult, 0, len(similar))
	for _, doc := range similar {
		grant := &m.grants[doc.Index]
		semanticScore := doc.Score
		domainScore := DomainScore(profile, grant)
		eligibilityScore, issues, actions := EvaluateEligibility(profile, &grant.Eligibility)
		strategicScore := StrategicScore(profile, grant)

		final := semanticScore*m.pol.Weights.Semantic +
			domainScore*m.pol.Weights.Domain +
			eligibilityScore*m.pol.Weights.Eligibility +
			strategicScore*m.pol.Weights.Strategic

		results = append(results, models.MatchResult{
			Grant:             grant,
			MatchScore:        fuseToMatchScore(final),
			EligibilityStatus: StatusForThresholds(eligibilityScore, m.pol.StatusThresholds.Eligible, m.pol.StatusThresholds.NeedsAction),
			EligibilityIssues: issues,
			Explanation:       Explain(profile, grant, semanticScore, domainScore, eligibilityScore, issues, actions),
			SemanticScore:     semanticScore,
			DomainScore:       domainScore,
			EligibilityScore:  eligibilityScore,
			StrategicScore:    strategicScore,
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].MatchScore > results[b].MatchScore
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// fuseToMatchScore converts a fused [0,1] score to the 0-100 integer
// scale. Sub-scores can drift past their nominal bound by a few ULPs,
// so the scaled value is clamped before rounding.
func fuseToMatchScore(final float64) int {
	scaled := final * 100
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 100 {
		scaled = 100
	}
	return int(math.Round(scaled))
}

// GrantText builds the corpus document for one grant: name,
// description, focus areas, tags, and the sanitized full description
// when present.
func GrantText(g *models.Grant) string {
	parts := []string{g.Name, g.Description, strings.Join(g.FocusAreas, " "), strings.Join(g.Tags, " ")}
	if g.FullDescription != nil && *g.FullDescription != "" {
		parts = append(parts, *g.FullDescription)
	}
	return strings.Join(parts, " ")
}

// ProfileText builds the query text from a profile: project title,
// description, domain tags, then project keywords, in that field order.
func ProfileText(p *models.Profile) string {
	return strings.Join([]string{
		p.Project.Title,
		p.Project.Description,
		strings.Join(p.Domains, " "),
		strings.Join(p.Project.Keywords, " "),
	}, " ")
}
