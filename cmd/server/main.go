package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"gridcrawl/server/config"
	"gridcrawl/server/handlers"
	"gridcrawl/server/persistence"
	"gridcrawl/server/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func main() {
	cfg, err := config.Load(config.Getenv("CONFIG_FILE", "crawl.yaml"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var db persistence.Storage
	if config.Getenv("DB_TYPE", "json") == "postgres" {
		dbConnectionString := config.Getenv("DATABASE_URL",
			"host=localhost user=gridcrawl password=gridcrawl dbname=gridcrawl sslmode=disable")
		db, err = persistence.NewPostgresStore(dbConnectionString)
		log.Println("Using PostgreSQL persistence")
	} else {
		db, err = persistence.NewJSONStore(config.Getenv("DB_FILE", "db.json"))
		log.Println("Using JSON persistence")
	}
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer db.Close()

	layoutService := services.NewLayoutService(db)
	if err := layoutService.Seed(cfg.Layouts); err != nil {
		log.Fatalf("Failed to seed layouts: %v", err)
	}
	names, err := layoutService.ListLayouts()
	if err != nil {
		log.Fatalf("Failed to list layouts: %v", err)
	}
	log.Printf("Layouts available: %v", names)

	worldService := services.NewWorldService(layoutService, cfg.Balance)
	clientManager := handlers.NewClientManager()
	defaultLayout := config.Getenv("DEFAULT_LAYOUT", "default")

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		handlers.HandleClientConnection(conn, worldService, clientManager, defaultLayout)
	})

	srv := &http.Server{
		Addr:    ":" + config.Getenv("PORT", "8080"),
		Handler: mux,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		clientManager.CloseAll()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
		// Shutdown does not track hijacked websocket connections.
		if err := clientManager.Wait(ctx); err != nil {
			log.Printf("Clients still connected at shutdown: %v", err)
		}
	}()

	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	<-shutdownDone
}
