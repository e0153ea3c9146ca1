package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashmart/cart"
	"dashmart/catalog"
	"dashmart/config"
	"dashmart/console"
	"dashmart/livefeed"
	"dashmart/middleware"
	"dashmart/mq"
	"dashmart/orders"
	"dashmart/ratelim"
	"dashmart/rdx"
	"dashmart/routes"
	"dashmart/suggestions"

	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	redisClient, err := rdx.Connect(ctx, cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Printf("⚠️ Redis unavailable, continuing without it: %v", err)
		redisClient = nil
	}

	// operator feed hub
	hub := livefeed.NewHub()
	go hub.Run()

	// order events: straight to the hub, or through Redis so every instance sees them
	var emitter *mq.Emitter
	if redisClient != nil {
		emitter = mq.NewEmitter(cfg.EventBuffer, mq.NewRedisSink(redisClient))
		go mq.StartOrderEventWorker(ctx, redisClient, mq.OrderEventsChannel, mq.HubSink{Hub: hub})
	} else {
		emitter = mq.NewEmitter(cfg.EventBuffer, mq.HubSink{Hub: hub})
	}
	emitterDone := make(chan struct{})
	go func() {
		emitter.Run(ctx)
		close(emitterDone)
	}()

	store := catalog.NewSeeded()
	manager := orders.NewManager(store, orders.WithPublisher(emitter))

	gemini, err := suggestions.NewGeminiClient(ctx, cfg.GeminiEndpoint, cfg.GeminiModel, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("❌ Gemini client: %v", err)
	}
	var svc suggestions.Service = gemini
	if redisClient != nil {
		svc = suggestions.NewCachedService(svc, suggestions.NewRedisCache(redisClient), cfg.SuggestTTL)
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set; suggestions will be empty")
	}

	rateLimiter := ratelim.NewRateLimiter(cfg.SuggestPerMin, cfg.SuggestBurst)
	go rateLimiter.Janitor(ctx, time.Minute, 10*time.Minute)

	carts := cart.NewSessions()
	go carts.Janitor(ctx, 5*time.Minute, cfg.CartIdleTTL)

	router := routes.RoutesWrapper(routes.Deps{
		Catalog:     store,
		Carts:       carts,
		Orders:      manager,
		Console:     console.New(manager, store, cfg.Store),
		Assistant:   suggestions.NewAssistant(svc, cfg.SuggestTimeout),
		Hub:         hub,
		RateLimiter: rateLimiter,
		Store:       cfg.Store,
		PublicURL:   cfg.PublicURL,
		TrackTick:   cfg.TrackTick,
	})

	// apply middleware: CORS → security headers → logging → metrics → session → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Session-ID"},
		AllowCredentials: true,
	}).Handler(middleware.Metrics(middleware.Session(router)))

	handler := middleware.Logging(middleware.SecurityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("🛑 Shutting down live feed...")
		hub.Stop()
	})

	go func() {
		log.Printf("🚀 Server listening on %s (store %s)", cfg.Port, cfg.Store.ID)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}

	// stop background workers and flush queued events
	stop()
	<-emitterDone
	if redisClient != nil {
		redisClient.Close()
	}

	log.Println("✅ Server stopped cleanly")
}
