package main

import (
	"context"
	"log"
	"os"

	"github.com/david/grant-match/internal/api"
	"github.com/david/grant-match/internal/db"
	"github.com/david/grant-match/internal/grants"
	"github.com/david/grant-match/internal/models"
	"github.com/david/grant-match/internal/policy"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	pol, err := policy.Load(os.Getenv("POLICY_FILE"))
	if err != nil {
		log.Fatalf("Failed to load scoring policy: %v", err)
	}

	loader := corpusLoader()
	grantList, err := loader()
	if err != nil {
		log.Fatalf("Failed to load grant corpus: %v", err)
	}
	log.Printf("Loaded %d grants", len(grantList))

	srv := api.NewServer(grantList, pol, loader)
	log.Printf("Server starting on port %s...", port)
	if err := srv.Start(port); err != nil {
		log.Fatal(err)
	}
}

// corpusLoader picks the grant source: Postgres when DATABASE_URL is
// set, otherwise the JSON corpus at GRANTS_FILE (or the embedded
// default). The same loader serves admin corpus reloads.
func corpusLoader() api.CorpusLoader {
	if os.Getenv("DATABASE_URL") == "" {
		grantsFile := os.Getenv("GRANTS_FILE")
		return func() ([]models.Grant, error) {
			return grants.Load(grantsFile)
		}
	}

	return func() ([]models.Grant, error) {
		ctx := context.Background()
		pool, err := db.Connect(ctx)
		if err != nil {
			return nil, err
		}
		defer pool.Close()

		if err := db.ApplyMigrations(ctx, pool); err != nil {
			return nil, err
		}
		return db.NewStore(pool).ListGrants(ctx)
	}
}
