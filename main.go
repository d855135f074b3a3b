package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"lg/fittrack-go-api/internal/config"
	"lg/fittrack-go-api/internal/kvstore"
	"lg/fittrack-go-api/internal/tracker"
)

func main() {
	// Set properties of the predefined Logger, including
	// the log entry prefix and a flag to disable printing
	// the time, source file, and line number.
	log.SetPrefix("fittrack-api: ")
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	store, err := kvstore.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("open %s store: %v", cfg.Store.Driver, err)
	}
	defer store.Close()
	fmt.Printf("Store ready (%s)\n", cfg.Store.Driver)

	t := tracker.New(store,
		tracker.WithLocation(cfg.Location),
		tracker.WithKeyPrefix(cfg.KeyPrefix))
	if err := t.Load(ctx); err != nil {
		log.Fatalf("load tracker state: %v", err)
	}

	fmt.Println("Starting gin app...")

	router := gin.Default()
	router.SetTrustedProxies(nil)
	newHandler(t, nil, nil).registerRoutes(router)

	if err := router.Run(cfg.HTTPAddress); err != nil {
		log.Fatal(err)
	}
}
