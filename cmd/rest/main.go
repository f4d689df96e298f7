package main

import (
	"context"
	"log"

	"pixfusion-be/internal/bootstrap"
	"pixfusion-be/internal/config"
	"pixfusion-be/internal/server"
	"pixfusion-be/internal/tracer"
	"pixfusion-be/pkg/database"
)

func main() {
	// 0. Tracing (no-op unless OTEL_ENABLED)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Configuration
	cfg := config.Load()

	// 2. Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Dependency container
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Event relay (websocket pushes + NATS republish)
	go func() {
		log.Println("Background: starting event relay...")
		if err := container.EventRelay.Run(context.Background()); err != nil {
			log.Printf("Background relay error: %v", err)
		}
	}()

	// 5. HTTP server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
