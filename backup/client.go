package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/calvinmclean/babyapi"

	"github.com/slotware/espeed/profile"
)

// Client talks to a backup server.
type Client struct {
	client *babyapi.Client[*Backup]
}

func NewClient(addr string) *Client {
	return &Client{client: babyapi.NewClient[*Backup](addr, "/backups")}
}

// Upload stores one snapshot and returns its ID.
func (c *Client) Upload(ctx context.Context, label string, settings profile.Settings) (string, error) {
	resp, err := c.client.Post(ctx, &Backup{
		Label:    label,
		SavedAt:  time.Now(),
		Settings: settings,
	})
	if err != nil {
		return "", fmt.Errorf("error uploading backup: %w", err)
	}
	return resp.Data.GetID(), nil
}

// Fetch retrieves the settings stored under id.
func (c *Client) Fetch(ctx context.Context, id string) (profile.Settings, error) {
	resp, err := c.client.Get(ctx, id)
	if err != nil {
		return profile.Settings{}, fmt.Errorf("error fetching backup: %w", err)
	}
	return resp.Data.Settings, nil
}

// List returns all stored snapshots, newest first not guaranteed.
func (c *Client) List(ctx context.Context) ([]*Backup, error) {
	resp, err := c.client.Search(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("error listing backups: %w", err)
	}
	return resp.Data.Items, nil
}
