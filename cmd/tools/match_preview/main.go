// match_preview runs the matching engine against a profile JSON file
// and prints the ranked results, without starting the server.
//
// Usage: match_preview -profile profile.json [-grants grants.json] [-top 10]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/david/grant-match/internal/grants"
	"github.com/david/grant-match/internal/match"
	"github.com/david/grant-match/internal/models"
	"github.com/david/grant-match/internal/policy"
)

func main() {
	profilePath := flag.String("profile", "", "path to profile JSON (required)")
	grantsPath := flag.String("grants", "", "path to grants JSON (default: embedded corpus)")
	topK := flag.Int("top", 10, "number of results to show")
	flag.Parse()

	if *profilePath == "" {
		log.Fatal("-profile is required")
	}

	data, err := os.ReadFile(*profilePath)
	if err != nil {
		log.Fatal(err)
	}
	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		log.Fatalf("Invalid profile JSON: %v", err)
	}

	grantList, err := grants.Load(*grantsPath)
	if err != nil {
		log.Fatal(err)
	}

	matcher := match.NewMatcher(grantList, policy.Default())
	results := matcher.Match(&profile, *topK)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Score", "Grant", "Status", "Semantic", "Domain", "Eligibility", "Strategic", "Top Reason"})

	for _, r := range results {
		reason := ""
		if len(r.Explanation.WhyMatched) > 0 {
			reason = r.Explanation.WhyMatched[0]
		}
		t.AppendRow(table.Row{
			r.MatchScore,
			truncate(r.Grant.Name, 40),
			r.EligibilityStatus,
			format2(r.SemanticScore),
			format2(r.DomainScore),
			format2(r.EligibilityScore),
			format2(r.StrategicScore),
			truncate(reason, 60),
		})
	}
	t.Render()
}

func format2(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
