package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"

	config "github.com/goldenreel/lobby-services/configs"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/broker"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/db"
	handlers "github.com/goldenreel/lobby-services/internal/lobbysvc/handlers"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/metrics"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/service"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/store"
	nats "github.com/goldenreel/lobby-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "lobby"

var instanceId string

func init() {
	config.Logging(SERVICE_NAME + "_service")
	config.LoadEnv(SERVICE_NAME)
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
}

func main() {

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	// schema migrations
	if err := db.Migrate(os.Getenv("POSTGRES_URL")); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userStore := store.NewUserStore(dbpool)
	authService := service.NewAuthService(userStore)

	gameStore := store.NewGameStore(dbpool)
	catalogService := service.NewCatalogService(gameStore)

	favoriteStore := store.NewFavoriteStore(dbpool)
	favoriteService := service.NewFavoriteService(favoriteStore, gameStore)

	sessionStore := store.NewSessionStore(dbpool)

	// Connect to NATS; session events are advisory, the lobby runs without them
	var events service.EventPublisher
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server, running without events %v", err)
	} else {
		defer n.Conn.Close()
		log.Printf("NATS connection established successfully %s", n.Url)

		b := broker.NewBroker(n.Conn)
		if err := b.PublishHeartbeat(instanceId); err != nil {
			log.Errorf("Error publishing heartbeat %v", err)
		}
		events = b
	}

	sessionService := service.NewSessionService(sessionStore, gameStore, events)

	// metrics registry and collector
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)
	r.Use(metrics.Middleware(collector))

	// to protect the service api from any over requests
	rateLimit := 100
	if rateLimitStr := os.Getenv("RATE_LIMIT"); rateLimitStr != "" {
		rateLimit, err = strconv.Atoi(rateLimitStr)
		if err != nil {
			log.Fatalf("Invalid RATE_LIMIT value: %v", err)
		}
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(authService, catalogService, sessionService, favoriteService)
	h.InitAuth()
	h.SetRoutes(r)
	r.Method("GET", "/metrics", metrics.Handler(registry))

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("LOBBY_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
