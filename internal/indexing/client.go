package indexing

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	indexingapi "google.golang.org/api/indexing/v3"
	"google.golang.org/api/option"
)

// urlUpdated is the notification type for new or updated content.
const urlUpdated = "URL_UPDATED"

// Publisher submits a single URL to the indexing service.
type Publisher interface {
	Publish(ctx context.Context, url string) error
}

// PublisherFactory constructs a Publisher with fresh credential and
// connection state. The gate calls it again after transient failures.
type PublisherFactory func(ctx context.Context) (Publisher, error)

// Credentials identifies the Google service account used for submission.
type Credentials struct {
	Email      string
	PrivateKey string
}

// GoogleClient publishes URL notifications through the Indexing API.
type GoogleClient struct {
	service *indexingapi.Service
}

// NewGoogleClient builds an Indexing API client authenticated with a
// service-account JWT.
func NewGoogleClient(ctx context.Context, creds Credentials) (*GoogleClient, error) {
	if creds.Email == "" || creds.PrivateKey == "" {
		return nil, fmt.Errorf("indexing client: service account email and private key are required")
	}

	conf := &jwt.Config{
		Email:      creds.Email,
		PrivateKey: []byte(creds.PrivateKey),
		Scopes:     []string{indexingapi.IndexingScope},
		TokenURL:   google.JWTTokenURL,
	}

	service, err := indexingapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("indexing client: new service: %w", err)
	}

	return &GoogleClient{service: service}, nil
}

// Publish notifies the Indexing API that url was added or updated.
func (c *GoogleClient) Publish(ctx context.Context, url string) error {
	notification := &indexingapi.UrlNotification{
		Url:  url,
		Type: urlUpdated,
	}

	_, err := c.service.UrlNotifications.Publish(notification).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("publish url notification: %w", err)
	}

	return nil
}

// NewFactory returns a PublisherFactory producing GoogleClients for the
// given credentials.
func NewFactory(creds Credentials) PublisherFactory {
	return func(ctx context.Context) (Publisher, error) {
		return NewGoogleClient(ctx, creds)
	}
}
