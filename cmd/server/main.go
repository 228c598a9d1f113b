package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/router"
)

func main() {
	// Load .env when present; real deployments set env vars directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// The store lives for the whole process and is shared by every
	// repository; all state is in memory and lost on restart.
	store := repository.NewStore()
	users := repository.NewUserRepo(store)
	organizers := repository.NewOrganizerRepo(store)
	events := repository.NewEventRepo(store)
	bookings := repository.NewBookingRepo(store)
	tokens := repository.NewTokenRepo(store)

	e := echo.New()

	// Rate limiting degrades to a no-op when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, organizers, tokens), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(events))
	router.RegisterOrganizer(e, handler.NewOrganizerHandler(events), cfg.JWTSecret)
	router.RegisterCustomer(e, handler.NewCustomerHandler(bookings, events), cfg.JWTSecret)

	// Background consumer that appends booking notifications to
	// logs/booking.log; it reconnects on its own if the broker drops.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
