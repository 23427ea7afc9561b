package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/spotlight/pkg/debug"
)

// Format is a snapshot file format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
)

// FormatFor infers the format from a file extension. Paths without an
// extension default to SVG.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg", "":
		return FormatSVG, nil
	case ".png":
		return FormatPNG, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported snapshot format %q (want .svg, .png or .json)", ext)
	}
}

// Save writes s to path in the format implied by its extension, creating
// parent directories as needed.
func Save(path string, s Snapshot) error {
	if path == "" {
		return fmt.Errorf("output path is required")
	}
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if filepath.Ext(path) == "" {
		path += ".svg"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	var buf bytes.Buffer
	switch format {
	case FormatSVG:
		err = WriteSVG(&buf, s)
	case FormatPNG:
		err = WritePNG(&buf, s)
	case FormatJSON:
		var data []byte
		data, err = s.MarshalIndent()
		buf.Write(data)
	}
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	debug.Log("export: wrote %s (%d bytes)", path, buf.Len())
	return nil
}

// WriteAll saves s to every path concurrently. The first failure cancels
// the writes that have not started yet and is returned.
func WriteAll(ctx context.Context, s Snapshot, paths ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return Save(path, s)
		})
	}
	return g.Wait()
}
