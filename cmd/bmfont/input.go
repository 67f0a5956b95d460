package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/unicode/norm"
)

// readText returns the text to render: the positional arguments joined by
// spaces, or the contents of file decoded from the named encoding. The
// result is NFC normalized so precomposed glyphs are found in the font.
// A literal "\n" or "\t" in arguments becomes a newline or tab.
func readText(args []string, file, encoding string) (string, error) {
	if file == "" {
		if len(args) == 0 {
			return "", fmt.Errorf("no text given")
		}
		text := strings.Join(args, " ")
		text = strings.NewReplacer(`\n`, "\n", `\t`, "\t").Replace(text)
		return norm.NFC.String(text), nil
	}

	var r io.Reader
	if file == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(file)
		if err != nil {
			return "", fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	return decodeText(r, encoding)
}

// decodeText reads r in the named encoding. Names follow the WHATWG
// encoding labels, e.g. "utf-8", "gbk", "shift_jis", "windows-1251".
func decodeText(r io.Reader, encoding string) (string, error) {
	if encoding != "" {
		enc, err := htmlindex.Get(encoding)
		if err != nil {
			return "", fmt.Errorf("unknown encoding %q: %w", encoding, err)
		}
		r = enc.NewDecoder().Reader(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return norm.NFC.String(strings.TrimRight(string(data), "\r\n")), nil
}
