package cli

import (
	"fmt"
	"io"

	"github.com/autobrr/go-pngchunks/internal/png"
)

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "pngchunks Command line, %s\n", png.LibVersion)
}
