package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/autobrr/go-pngchunks/internal/png"
)

// extractChunks writes the payload of every chunk whose tag is in tags to
// dir/<file>.<tag>.<index>.bin, index being the chunk's position in the
// chain.
func extractChunks(dir, file string, c *png.Carrier, tags map[string]bool, log *zap.Logger) error {
	if len(tags) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &png.IOError{Path: dir, Op: "mkdir", Err: err}
	}

	base := filepath.Base(file)
	for i, ch := range c.Chunks() {
		tag, err := ch.Tag()
		if err != nil {
			return err
		}
		if !tags[tag] {
			continue
		}
		p, err := ch.Payload()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("%s.%s.%d.bin", base, tag, i))
		if err := os.WriteFile(path, p, 0o644); err != nil {
			return &png.IOError{Path: path, Op: "write", Err: err}
		}
		log.Debug("extracted chunk",
			zap.String("file", file),
			zap.String("tag", tag),
			zap.Int("index", i),
			zap.String("path", path),
			zap.Int("bytes", len(p)),
		)
	}
	return nil
}
