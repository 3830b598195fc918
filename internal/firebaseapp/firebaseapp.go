package firebaseapp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

// Clients holds the Firebase services the API talks to. Messaging is nil
// when the app could not initialize it; push delivery is then skipped.
type Clients struct {
	Firestore *firestore.Client
	Messaging *messaging.Client
}

func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}

func New(ctx context.Context, cfg *config.Config) (*Clients, error) {
	app, err := firebase.NewApp(
		ctx,
		&firebase.Config{ProjectID: cfg.FirebaseProjectID},
		Options(cfg.FirebaseCredFile)...,
	)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	msg, err := app.Messaging(ctx)
	if err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("messaging client: %w", err)
	}

	return &Clients{Firestore: fs, Messaging: msg}, nil
}

// Options turns FIREBASE_CREDENTIALS into client options. The value may be
// inline JSON, base64-encoded JSON or a file path. Empty means application
// default credentials.
func Options(cred string) []option.ClientOption {
	cred = strings.TrimSpace(cred)
	if cred == "" {
		return nil
	}

	if strings.HasPrefix(cred, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cred))}
	}
	if decoded, err := base64.StdEncoding.DecodeString(cred); err == nil && strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
		return []option.ClientOption{option.WithCredentialsJSON(decoded)}
	}

	return []option.ClientOption{option.WithCredentialsFile(cred)}
}
