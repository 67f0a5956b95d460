package pixoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jwulff/bmfont-go/internal/domain"
)

// DefaultPort is the default Pixoo HTTP API port.
const DefaultPort = 80

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 5 * time.Second

// Client is an HTTP client for one Pixoo device.
type Client struct {
	// Endpoint is the command URL, http://<host>:<port>/post.
	Endpoint   string
	HTTPClient *http.Client
}

// NewClient creates a client for the device at host on the default port.
func NewClient(host string) *Client {
	return NewClientWithPort(host, DefaultPort)
}

// NewClientWithPort creates a client for the device at host:port.
func NewClientWithPort(host string, port int) *Client {
	return &Client{
		Endpoint: fmt.Sprintf("http://%s:%d/post", host, port),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Send posts one command and checks the device's error code.
func (c *Client) Send(ctx context.Context, command any) error {
	data, err := json.Marshal(command)
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}
	return ParseResponse(body)
}

// SendFrame shows frame as picture picID.
func (c *Client) SendFrame(ctx context.Context, frame *domain.Frame, picID int) error {
	return c.Send(ctx, NewFrameCommand(frame, picID))
}

// ResetPictures resets the device's picture counter.
func (c *Client) ResetPictures(ctx context.Context) error {
	return c.Send(ctx, NewResetCommand())
}

// SetBrightness sets the display brightness (0-100).
func (c *Client) SetBrightness(ctx context.Context, brightness int) error {
	return c.Send(ctx, NewBrightnessCommand(brightness))
}
