package bmfont

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// FormatError is returned when a font container is malformed.
type FormatError struct {
	Reason string
}

func (e FormatError) Error() string {
	return "invalid font format: " + e.Reason
}

// VersionError is returned when a font container declares an unsupported version.
type VersionError struct {
	Version byte
}

func (e VersionError) Error() string {
	return fmt.Sprintf("unsupported font version: %d (want %d)", e.Version, Version)
}

// IsFormatError checks if an error is a format error.
func IsFormatError(err error) bool {
	var fe FormatError
	return errors.As(err, &fe)
}

// IsVersionError checks if an error is a version error.
func IsVersionError(err error) bool {
	var ve VersionError
	return errors.As(err, &ve)
}

// errClosed is returned by every operation on a closed font.
var errClosed = fmt.Errorf("font is closed: %w", fs.ErrClosed)

// readErr normalises the error of a short ReadAt.
func readErr(err error) error {
	if err == nil || err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
