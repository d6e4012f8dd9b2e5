// Dumps the persisted cart and profile snapshots. Handy when debugging why a
// visitor's cart looks wrong.
//
// Usage: go run ./scripts/list-snapshots [db-path]
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "modernc.org/sqlite"

	"github.com/faideclothing/faide-store/storage/db"
)

func main() {
	dbPath := "./db/faide.db"
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()
	queries := db.New(conn)

	keys, err := queries.ListSnapshotKeys(ctx)
	if err != nil {
		log.Fatal("failed to list snapshots:", err)
	}

	fmt.Printf("%d snapshot(s) in %s\n", len(keys), dbPath)
	for _, key := range keys {
		snap, err := queries.GetSnapshot(ctx, key)
		if err != nil {
			log.Fatalf("failed to read %s: %v", key, err)
		}
		fmt.Printf("\n%s (updated %s)\n%s\n", snap.Key, snap.UpdatedAt.Format("2006-01-02 15:04:05"), snap.Payload)
	}
}
