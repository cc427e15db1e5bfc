// Command seed prepares the Postgres session store: it creates the
// kiosk_sessions table and verifies connectivity. Safe to run more
// than once.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/ai-kiosk/api/internal/session"
)

func main() {
	dbURL := flag.String("database-url", "", "Postgres connection string")
	flag.Parse()

	if *dbURL == "" {
		*dbURL = os.Getenv("DATABASE_URL")
	}
	if *dbURL == "" {
		log.Fatal("DATABASE_URL is required (flag -database-url or env)")
	}

	ctx := context.Background()
	pool, err := session.Connect(ctx, *dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, session.Schema); err != nil {
		log.Fatalf("create kiosk_sessions table: %v", err)
	}

	log.Println("kiosk_sessions table ready")
}
