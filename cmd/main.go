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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/contractbank/ledger-service/internal/events"
	"github.com/contractbank/ledger-service/internal/handler"
	"github.com/contractbank/ledger-service/internal/ledger"
	"github.com/contractbank/ledger-service/internal/middleware"
	"github.com/contractbank/ledger-service/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// Event streaming is optional: without a configured Redis address the
	// service runs fully self-contained and discards events.
	var publisher events.Publisher = events.NopPublisher{}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client, err := events.NewClient(addr, os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		publisher = events.NewStreamPublisher(client)
		log.Printf("Publishing ledger events to Redis at %s", addr)
	}

	store := ledger.NewStore()
	ledgerSvc := service.NewLedgerService(store, publisher)
	ledgerHandler := handler.NewLedgerHandler(ledgerSvc)

	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "ledger-service"})
	})

	router.POST("/deposit", ledgerHandler.Deposit)
	router.POST("/withdraw", ledgerHandler.Withdraw)
	router.POST("/transfer", ledgerHandler.Transfer)
	router.GET("/account/:accountID", ledgerHandler.GetAccount)
	router.DELETE("/accounts", ledgerHandler.ResetAccounts)

	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Ledger service starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
