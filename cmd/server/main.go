package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/config"
	"github.com/azuma520/prompt-scribe/gateway/internal/infrastructure/server"
)

func main() {
	// Flags override environment configuration
	port := flag.String("port", "", "Server port")
	backendURL := flag.String("backend", "", "Prompt-Scribe backend base URL")
	mock := flag.Bool("mock", false, "Serve the built-in tag catalog instead of calling the backend")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *backendURL != "" {
		cfg.Backend.URL = *backendURL
	}
	if *mock {
		cfg.Backend.UseMockData = true
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
