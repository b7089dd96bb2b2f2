package policy

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed config/policy.yaml
var policyYAML embed.FS

// Policy holds the tunable scoring constants: score-fusion weights,
// eligibility status thresholds, and the competitiveness tiers used by
// the application-tips generator. The tier cutoffs (85/70/55) are
// policy constants, not derived business rules; change them here, not
// in code.
type Policy struct {
	Weights          Weights          `yaml:"weights"`
	StatusThresholds StatusThresholds `yaml:"status_thresholds"`
	Competitiveness  Competitiveness  `yaml:"competitiveness"`
}

// Weights are the fusion coefficients for the four sub-scores. They
// should sum to 1.0 so the fused score stays in [0,1].
type Weights struct {
	Semantic    float64 `yaml:"semantic"`
	Domain      float64 `yaml:"domain"`
	Eligibility float64 `yaml:"eligibility"`
	Strategic   float64 `yaml:"strategic"`
}

type StatusThresholds struct {
	Eligible    float64 `yaml:"eligible"`     // score >= this -> eligible
	NeedsAction float64 `yaml:"needs_action"` // score >= this -> needs_action
}

// Tier maps a minimum match score to a competitiveness label and a
// multiplier applied to the grant's historical success rate.
type Tier struct {
	MinMatchScore int     `yaml:"min_match_score"`
	Label         string  `yaml:"label"`
	Multiplier    float64 `yaml:"multiplier"`
}

type Competitiveness struct {
	Tiers       []Tier  `yaml:"tiers"` // evaluated top-down, first match wins
	Fallback    Tier    `yaml:"fallback"`
	EstimateCap float64 `yaml:"estimate_cap"`
}

// Load reads the policy from the file at path, or the embedded
// policy.yaml when path is empty. Environment variables in the YAML are
// expanded before parsing.
func Load(path string) (*Policy, error) {
	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = policyYAML.ReadFile("config/policy.yaml")
	}
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	var p Policy
	if err := yaml.Unmarshal([]byte(expanded), &p); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Default returns the embedded policy, panicking if it cannot parse.
// The embedded file is part of the binary, so a failure here is a build
// defect, not a runtime condition.
func Default() *Policy {
	p, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("policy: embedded policy.yaml invalid: %v", err))
	}
	return p
}

func (p *Policy) validate() error {
	sum := p.Weights.Semantic + p.Weights.Domain + p.Weights.Eligibility + p.Weights.Strategic
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("fusion weights must sum to 1.0, got %.3f", sum)
	}
	if p.StatusThresholds.Eligible <= p.StatusThresholds.NeedsAction {
		return fmt.Errorf("eligible threshold %.2f must exceed needs_action threshold %.2f",
			p.StatusThresholds.Eligible, p.StatusThresholds.NeedsAction)
	}
	for i := 1; i < len(p.Competitiveness.Tiers); i++ {
		if p.Competitiveness.Tiers[i].MinMatchScore >= p.Competitiveness.Tiers[i-1].MinMatchScore {
			return fmt.Errorf("competitiveness tiers must be in descending cutoff order")
		}
	}
	return nil
}

// TierFor returns the first tier whose cutoff the match score meets,
// falling back to the configured fallback tier.
func (c Competitiveness) TierFor(matchScore int) Tier {
	for _, t := range c.Tiers {
		if matchScore >= t.MinMatchScore {
			return t
		}
	}
	return c.Fallback
}
