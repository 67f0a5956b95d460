package pixoo

import (
	"testing"

	"github.com/jwulff/bmfont-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ domain.Surface = (*Display)(nil)
	_ domain.Clearer = (*Display)(nil)
	_ domain.Shower  = (*Display)(nil)
)

func TestNewDisplay(t *testing.T) {
	d := NewDisplay(NewClient("unused"))

	w, h := d.Dimensions()
	assert.Equal(t, 64, w)
	assert.Equal(t, 64, h)
	assert.Equal(t, 64*64*3, d.BufferSize())
}

func TestDisplayShowResetsOnce(t *testing.T) {
	device := &fakeDevice{}
	d := NewDisplay(newTestClient(t, device))
	d.SetPixel(0, 0, domain.NewRGB(255, 255, 255))

	require.NoError(t, d.Show())
	require.NoError(t, d.Show())

	assert.Equal(t, []string{CmdResetGifID, CmdSendGif, CmdSendGif}, device.names())
	assert.Equal(t, float64(1), device.command(1)["PicID"])
	assert.Equal(t, float64(2), device.command(2)["PicID"])
	assert.Equal(t, EncodePixels(d.Frame), device.command(2)["PicData"])
}

func TestDisplayShowError(t *testing.T) {
	device := &fakeDevice{reply: `{"error_code":1}`}
	d := NewDisplay(newTestClient(t, device))

	err := d.Show()

	assert.ErrorContains(t, err, "failed to reset pictures")
}
