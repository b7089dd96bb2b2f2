package match

import (
	"strings"
	"testing"

	"github.com/david/grant-match/internal/models"
)

func strongProfile() *models.Profile {
	state := "Karnataka"
	return &models.Profile{
		UserType: "startup",
		Domains:  []string{"AI", "Healthcare"},
		Location: models.Location{Country: "India", State: &state},
		Stage:    "prototype",
		Project: models.Project{
			Title:         "AI Diagnostic Tool",
			FundingNeeded: 50000,
		},
		Credentials: models.Credentials{
			Publications:   2,
			Patents:        1,
			PreviousGrants: []string{"NIDHI PRAYAS"},
		},
	}
}

func strongGrant() *models.Grant {
	return &models.Grant{
		Name:       "Google AI for Social Good Grant",
		Amount:     100000,
		Currency:   "USD",
		FocusAreas: []string{"AI", "Healthcare"},
		Eligibility: models.Eligibility{
			Stages:    []string{"prototype", "registered"},
			Locations: []string{"Global"},
		},
	}
}

func TestExplain_WhyMatchedCappedAtFourInDeclarationOrder(t *testing.T) {
	// Every reason condition holds, so the first four in source order
	// must survive: semantic, domain, location, stage.
	exp := Explain(strongProfile(), strongGrant(), 0.8, 1.0, 1.0, nil, nil)

	if len(exp.WhyMatched) != 4 {
		t.Fatalf("expected 4 reasons, got %d: %v", len(exp.WhyMatched), exp.WhyMatched)
	}
	if !strings.Contains(exp.WhyMatched[0], "strongly aligns") {
		t.Fatalf("first reason must be the strong semantic one, got %q", exp.WhyMatched[0])
	}
	if !strings.Contains(exp.WhyMatched[1], "Perfect domain match") {
		t.Fatalf("second reason must be the perfect domain one, got %q", exp.WhyMatched[1])
	}
	if !strings.Contains(exp.WhyMatched[2], "regional advantage") {
		t.Fatalf("third reason must be the location one, got %q", exp.WhyMatched[2])
	}
	if !strings.Contains(exp.WhyMatched[3], "stage is ideal") {
		t.Fatalf("fourth reason must be the stage one, got %q", exp.WhyMatched[3])
	}
}

func TestExplain_ModerateSemanticPhrasing(t *testing.T) {
	exp := Explain(strongProfile(), strongGrant(), 0.5, 0.0, 1.0, nil, nil)
	if len(exp.WhyMatched) == 0 || !strings.Contains(exp.WhyMatched[0], "good alignment") {
		t.Fatalf("semantic score in (0.4, 0.7] must use the moderate phrasing, got %v", exp.WhyMatched)
	}
}

func TestExplain_ConcernsOnlyBelowEligibleThreshold(t *testing.T) {
	issues := []string{"issue one", "issue two", "issue three"}

	exp := Explain(strongProfile(), strongGrant(), 0.1, 0.1, 0.9, issues, nil)
	if len(exp.EligibilityConcerns) != 0 {
		t.Fatalf("no concerns expected at eligibility 0.9, got %v", exp.EligibilityConcerns)
	}

	exp = Explain(strongProfile(), strongGrant(), 0.1, 0.1, 0.6, issues, nil)
	if len(exp.EligibilityConcerns) != 2 {
		t.Fatalf("expected first 2 issues as concerns, got %v", exp.EligibilityConcerns)
	}
	if exp.EligibilityConcerns[0] != "issue one" || exp.EligibilityConcerns[1] != "issue two" {
		t.Fatalf("concerns must be a prefix of the issues list, got %v", exp.EligibilityConcerns)
	}
}

func TestExplain_ActionItemsCappedAtThree(t *testing.T) {
	actions := []string{"a", "b", "c", "d"}
	exp := Explain(strongProfile(), strongGrant(), 0.0, 0.0, 1.0, nil, actions)
	if len(exp.ActionItems) != 3 {
		t.Fatalf("expected 3 action items, got %v", exp.ActionItems)
	}
	if exp.ActionItems[0] != "a" || exp.ActionItems[2] != "c" {
		t.Fatalf("action items must be a fixed-order prefix, got %v", exp.ActionItems)
	}
}

func TestExplain_EmptyInputsProduceEmptyLists(t *testing.T) {
	exp := Explain(&models.Profile{Project: models.Project{FundingNeeded: 1}}, &models.Grant{}, 0.0, 0.0, 1.0, nil, nil)
	if exp.WhyMatched == nil || exp.ActionItems == nil || exp.EligibilityConcerns == nil {
		t.Fatal("explanation lists must be empty, not nil")
	}
	if len(exp.WhyMatched) != 0 {
		t.Fatalf("no reason condition holds, got %v", exp.WhyMatched)
	}
}
