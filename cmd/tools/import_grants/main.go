// import_grants pushes a JSON grant corpus into Postgres so the server
// can load it from DATABASE_URL instead of a file.
//
// Usage: import_grants -grants grants.json
package main

import (
	"context"
	"flag"
	"log"

	"github.com/david/grant-match/internal/db"
	"github.com/david/grant-match/internal/grants"
)

func main() {
	grantsPath := flag.String("grants", "", "path to grants JSON (default: embedded corpus)")
	flag.Parse()

	ctx := context.Background()
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	grantList, err := grants.Load(*grantsPath)
	if err != nil {
		log.Fatal(err)
	}

	store := db.NewStore(pool)
	imported := 0
	for i := range grantList {
		if err := store.UpsertGrant(ctx, &grantList[i]); err != nil {
			log.Printf("Failed to import grant %s: %v", grantList[i].ID, err)
			continue
		}
		imported++
	}

	log.Printf("Imported %d/%d grants", imported, len(grantList))
}
