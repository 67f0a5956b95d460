package pixoo

import (
	"context"
	"fmt"

	"github.com/jwulff/bmfont-go/internal/domain"
)

// Display is a 64x64 RGB surface backed by a Pixoo device. Drawing only
// touches the local frame; Show uploads it.
type Display struct {
	*domain.Frame
	client *Client
	picID  int
}

// NewDisplay returns a blank display for client.
func NewDisplay(client *Client) *Display {
	return &Display{
		Frame:  domain.NewFrame(domain.Pixoo64Size, domain.Pixoo64Size),
		client: client,
	}
}

// ShowContext uploads the frame. The first upload resets the device's
// picture counter.
func (d *Display) ShowContext(ctx context.Context) error {
	if d.picID == 0 {
		if err := d.client.ResetPictures(ctx); err != nil {
			return fmt.Errorf("failed to reset pictures: %w", err)
		}
	}
	d.picID++
	if err := d.client.SendFrame(ctx, d.Frame, d.picID); err != nil {
		return fmt.Errorf("failed to send frame %d: %w", d.picID, err)
	}
	return nil
}

// Show implements domain.Shower.
func (d *Display) Show() error {
	return d.ShowContext(context.Background())
}
