package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/libaas-tailors/api/internal/config"
	"github.com/libaas-tailors/api/internal/notify"
	"github.com/libaas-tailors/api/internal/router"
	"github.com/libaas-tailors/api/internal/upstream"
)

func main() {
	cfg := config.Load()

	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)

	hub := notify.NewHub()
	go hub.Run()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.New(cfg, client, hub),
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("ERROR: server shutdown: %v", err)
	}
}
