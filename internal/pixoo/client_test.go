package pixoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jwulff/bmfont-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice records the commands posted to it.
type fakeDevice struct {
	mu       sync.Mutex
	commands []map[string]any
	reply    string
	status   int
}

func (d *fakeDevice) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var cmd map[string]any
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d.mu.Lock()
	d.commands = append(d.commands, cmd)
	d.mu.Unlock()

	if d.status != 0 {
		w.WriteHeader(d.status)
	}
	reply := d.reply
	if reply == "" {
		reply = `{"error_code":0}`
	}
	_, _ = w.Write([]byte(reply))
}

func (d *fakeDevice) names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.commands))
	for i, c := range d.commands {
		out[i], _ = c["Command"].(string)
	}
	return out
}

func (d *fakeDevice) command(i int) map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i >= len(d.commands) {
		return nil
	}
	return d.commands[i]
}

func newTestClient(t *testing.T, device *fakeDevice) *Client {
	t.Helper()
	server := httptest.NewServer(device)
	t.Cleanup(server.Close)
	client := NewClient("unused")
	client.Endpoint = server.URL + "/post"
	return client
}

func TestNewClient(t *testing.T) {
	client := NewClient("192.168.1.100")

	assert.Equal(t, "http://192.168.1.100:80/post", client.Endpoint)
	require.NotNil(t, client.HTTPClient)
	assert.Equal(t, DefaultTimeout, client.HTTPClient.Timeout)

	assert.Equal(t, "http://192.168.1.100:8080/post", NewClientWithPort("192.168.1.100", 8080).Endpoint)
}

func TestClientSendFrame(t *testing.T) {
	var received FrameCommand
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/post", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"error_code":0}`))
	}))
	defer server.Close()
	client := NewClient("unused")
	client.Endpoint = server.URL + "/post"

	frame := domain.NewFrameWithColor(64, 64, domain.NewRGB(255, 0, 0))
	err := client.SendFrame(context.Background(), frame, 3)

	require.NoError(t, err)
	assert.Equal(t, CmdSendGif, received.Command)
	assert.Equal(t, 3, received.PicID)
	assert.Equal(t, EncodePixels(frame), received.PicData)
}

func TestClientSetBrightness(t *testing.T) {
	device := &fakeDevice{}
	client := newTestClient(t, device)

	require.NoError(t, client.SetBrightness(context.Background(), 75))

	require.Equal(t, []string{CmdSetBrightness}, device.names())
	assert.Equal(t, float64(75), device.command(0)["Brightness"])
}

func TestClientHTTPError(t *testing.T) {
	device := &fakeDevice{status: http.StatusInternalServerError, reply: "boom"}
	client := newTestClient(t, device)

	err := client.ResetPictures(context.Background())

	assert.ErrorContains(t, err, "unexpected status code: 500")
}

func TestClientDeviceError(t *testing.T) {
	device := &fakeDevice{reply: `{"error_code":4}`}
	client := newTestClient(t, device)

	err := client.ResetPictures(context.Background())

	assert.ErrorContains(t, err, "error code 4")
}

func TestClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()
	client := NewClient("unused")
	client.Endpoint = server.URL
	client.HTTPClient.Timeout = 20 * time.Millisecond

	err := client.SetBrightness(context.Background(), 10)

	assert.Error(t, err)
}

func TestClientContextCanceled(t *testing.T) {
	client := newTestClient(t, &fakeDevice{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.SetBrightness(ctx, 10)

	assert.ErrorIs(t, err, context.Canceled)
}
