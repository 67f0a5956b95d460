// Package pixoo sends rendered frames to a Divoom Pixoo64 panel.
//
// The device exposes a JSON command API: POST http://<host>/post. A frame is
// sent as a single-picture animation of 64x64 RGB pixels, base64 encoded.
// Every new picture needs a PicID larger than the last one the device has
// seen, so a session starts by resetting the counter.
package pixoo

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/jwulff/bmfont-go/internal/domain"
)

// Command names.
const (
	CmdSendGif       = "Draw/SendHttpGif"
	CmdResetGifID    = "Draw/ResetHttpGifId"
	CmdSetBrightness = "Channel/SetBrightness"
)

// DefaultSpeed is the frame duration in milliseconds for single-frame pictures.
const DefaultSpeed = 1000

// Command is a bare command with no arguments.
type Command struct {
	Command string `json:"Command"`
}

// FrameCommand represents a Draw/SendHttpGif command.
type FrameCommand struct {
	Command   string `json:"Command"`
	PicNum    int    `json:"PicNum"`
	PicWidth  int    `json:"PicWidth"`
	PicOffset int    `json:"PicOffset"`
	PicID     int    `json:"PicID"`
	PicSpeed  int    `json:"PicSpeed"`
	PicData   string `json:"PicData"`
}

// BrightnessCommand represents a Channel/SetBrightness command.
type BrightnessCommand struct {
	Command    string `json:"Command"`
	Brightness int    `json:"Brightness"`
}

// Response is the envelope every command answers with.
type Response struct {
	ErrorCode int `json:"error_code"`
}

// EncodePixels encodes frame pixels for PicData.
func EncodePixels(frame *domain.Frame) string {
	return base64.StdEncoding.EncodeToString(frame.Pixels)
}

// DecodePixels decodes PicData back into a frame.
func DecodePixels(encoded string, width, height int) (*domain.Frame, error) {
	pixels, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	expectedSize := width * height * domain.BytesPerPixel
	if len(pixels) != expectedSize {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", expectedSize, len(pixels))
	}

	return &domain.Frame{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// NewFrameCommand wraps frame as picture picID.
func NewFrameCommand(frame *domain.Frame, picID int) FrameCommand {
	return FrameCommand{
		Command:  CmdSendGif,
		PicNum:   1,
		PicWidth: frame.Width,
		PicID:    picID,
		PicSpeed: DefaultSpeed,
		PicData:  EncodePixels(frame),
	}
}

// NewResetCommand creates a Draw/ResetHttpGifId command.
func NewResetCommand() Command {
	return Command{Command: CmdResetGifID}
}

// NewBrightnessCommand creates a Channel/SetBrightness command, clamping
// brightness to 0-100.
func NewBrightnessCommand(brightness int) BrightnessCommand {
	return BrightnessCommand{
		Command:    CmdSetBrightness,
		Brightness: min(max(brightness, 0), 100),
	}
}

// ParseResponse decodes a command response and reports a non-zero error code.
func ParseResponse(body []byte) error {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.ErrorCode != 0 {
		return fmt.Errorf("device returned error code %d", resp.ErrorCode)
	}
	return nil
}
