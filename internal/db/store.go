package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/david/grant-match/internal/models"
)

// Store reads and writes the grant corpus table. Eligibility is kept as
// a JSONB blob since the matcher only ever loads whole grants.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const selectCols = `id, name, organization, grant_type, amount, currency, equity_required,
	deadline, description, full_description, focus_areas, eligibility, benefits,
	difficulty, success_rate, application_time_estimate, competition_level,
	past_winners, tags, website, contact_email`

// ListGrants returns the full corpus in a stable order. Corpus ordering
// must not change between matcher rebuilds over the same data, so rows
// come back sorted by id.
func (s *Store) ListGrants(ctx context.Context) ([]models.Grant, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+selectCols+" FROM grants ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying grants: %w", err)
	}
	defer rows.Close()

	var grants []models.Grant
	for rows.Next() {
		var g models.Grant
		var eligibilityJSON []byte
		if err := rows.Scan(
			&g.ID, &g.Name, &g.Organization, &g.Type, &g.Amount, &g.Currency, &g.EquityRequired,
			&g.Deadline, &g.Description, &g.FullDescription, &g.FocusAreas, &eligibilityJSON, &g.Benefits,
			&g.Difficulty, &g.SuccessRate, &g.ApplicationTime, &g.CompetitionLevel,
			&g.PastWinners, &g.Tags, &g.Website, &g.ContactEmail,
		); err != nil {
			return nil, fmt.Errorf("scanning grant: %w", err)
		}
		if err := json.Unmarshal(eligibilityJSON, &g.Eligibility); err != nil {
			return nil, fmt.Errorf("decoding eligibility for grant %s: %w", g.ID, err)
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// UpsertGrant inserts or replaces one grant row keyed by id.
func (s *Store) UpsertGrant(ctx context.Context, g *models.Grant) error {
	eligibilityJSON, err := json.Marshal(g.Eligibility)
	if err != nil {
		return fmt.Errorf("encoding eligibility for grant %s: %w", g.ID, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO grants (
			id, name, organization, grant_type, amount, currency, equity_required,
			deadline, description, full_description, focus_areas, eligibility, benefits,
			difficulty, success_rate, application_time_estimate, competition_level,
			past_winners, tags, website, contact_email
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		ON CONFLICT (id) DO UPDATE SET
			updated_at = NOW(),
			name = EXCLUDED.name,
			organization = EXCLUDED.organization,
			grant_type = EXCLUDED.grant_type,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			equity_required = EXCLUDED.equity_required,
			deadline = EXCLUDED.deadline,
			description = EXCLUDED.description,
			full_description = EXCLUDED.full_description,
			focus_areas = EXCLUDED.focus_areas,
			eligibility = EXCLUDED.eligibility,
			benefits = EXCLUDED.benefits,
			difficulty = EXCLUDED.difficulty,
			success_rate = EXCLUDED.success_rate,
			application_time_estimate = EXCLUDED.application_time_estimate,
			competition_level = EXCLUDED.competition_level,
			past_winners = EXCLUDED.past_winners,
			tags = EXCLUDED.tags,
			website = EXCLUDED.website,
			contact_email = EXCLUDED.contact_email
	`,
		g.ID, g.Name, g.Organization, g.Type, g.Amount, g.Currency, g.EquityRequired,
		g.Deadline, g.Description, g.FullDescription, g.FocusAreas, eligibilityJSON, g.Benefits,
		g.Difficulty, g.SuccessRate, g.ApplicationTime, g.CompetitionLevel,
		g.PastWinners, g.Tags, g.Website, g.ContactEmail,
	)
	if err != nil {
		return fmt.Errorf("upserting grant %s: %w", g.ID, err)
	}
	return nil
}

// CountGrants reports the corpus size.
func (s *Store) CountGrants(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM grants").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting grants: %w", err)
	}
	return count, nil
}
