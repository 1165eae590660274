package main

import (
	"context"
	"errors"
	"os"
	"time"

	"vibeform/internal/app"
	"vibeform/internal/authoring"
	"vibeform/internal/config"
	"vibeform/internal/log"
	"vibeform/internal/model"
	"vibeform/internal/service"
)

func main() {
	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close(ctx)

	email := envOr("SEED_EMAIL", "demo@vibeform.dev")
	password := envOr("SEED_PASSWORD", "vibeform-demo")

	ownerID, err := ensureUser(ctx, a, email, password)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	draft := &authoring.Draft{}
	day := draft.Add(model.QuestionTypeShort)
	draft.SetText(day, "How was your day?")
	draft.SetRequired(day, true)

	mood := draft.Add(model.QuestionTypeEmoji)
	draft.SetText(mood, "Pick the emojis that match your mood")
	draft.SetOption(mood, 0, "😃")
	draft.AddOption(mood, "😐")
	draft.AddOption(mood, "😢")

	form, err := draft.Publish("VibeForm Survey 1", "")
	if err != nil {
		log.Fatalf("Failed to build demo form: %v", err)
	}
	form.OwnerID = ownerID

	if _, err := a.FormRepo.Create(ctx, form); err != nil {
		log.Fatalf("Failed to insert form: %v", err)
	}

	log.WithFields(log.Fields{"form": form.ID, "owner": email}).Infof("Successfully created demo form '%s'", form.Title)
}

func ensureUser(ctx context.Context, a *app.App, email, password string) (string, error) {
	user, err := a.AuthService.Register(ctx, email, password)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, service.ErrEmailTaken) {
		return "", err
	}

	existing, err := a.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", service.ErrInvalidCredentials
	}
	return existing.ID, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
