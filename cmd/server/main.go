package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vibeform/internal/app"
	"vibeform/internal/config"
	"vibeform/internal/log"
	"vibeform/internal/transport/rest"
)

func main() {
	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close(ctx)

	router := rest.NewRouter(&rest.Container{
		AuthService:     a.AuthService,
		FormService:     a.FormService,
		ResponseService: a.ResponseService,
		SummaryService:  a.SummaryService,
		FillService:     a.FillService,
		WSHub:           a.Hub,
		CORSOrigins:     cfg.AllowedOrigins(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server starting on :%s", cfg.HTTPPort)
		log.Info("Endpoints:")
		log.Info("  POST /v1/auth/register, /v1/auth/login")
		log.Info("  POST/GET /v1/forms, GET/PUT/DELETE /v1/forms/{formId}")
		log.Info("  GET /v1/forms/{formId}/responses, /v1/forms/{formId}/summary")
		log.Info("  POST /v1/responses/{formId}")
		log.Info("  POST /v1/fill/{formId}/sessions, /v1/fill/sessions/{sessionId}/...")
		log.Info("  WS  /v1/ws/fill/{sessionId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
