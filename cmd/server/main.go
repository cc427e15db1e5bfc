package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/ai-kiosk/api/internal/catalog"
	"github.com/ai-kiosk/api/internal/config"
	"github.com/ai-kiosk/api/internal/interpreter"
	"github.com/ai-kiosk/api/internal/router"
	"github.com/ai-kiosk/api/internal/session"
	"github.com/ai-kiosk/api/internal/ws"
)

func main() {
	cfg := config.Load()

	cat := catalog.Default()
	proc := interpreter.New(cat)

	var sessions session.Store
	if cfg.DatabaseURL != "" {
		pool, err := session.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("connect to database: %v", err)
		}
		defer pool.Close()
		sessions = session.NewPostgres(pool)
		log.Println("Using Postgres session store")
	} else {
		sessions = session.NewMemory()
		log.Println("Using in-memory session store")
	}

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(cfg, cat, proc, sessions, hub)

	log.Printf("Starting kiosk server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
