package report

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/autobrr/go-pngchunks/internal/png"
)

// RenderSummary writes one table row per chunk of c followed by the totals.
func RenderSummary(w io.Writer, st Style, c *png.Carrier) error {
	chunks := c.Chunks()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Type", "Offset", "Length"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, ch := range chunks {
		tag, err := ch.Tag()
		if err != nil {
			return err
		}
		length, err := ch.Length()
		if err != nil {
			return err
		}
		table.Append([]string{tag, formatOffset(ch.Offset()), strconv.FormatUint(uint64(length), 10)})
	}
	table.Render()

	return writeSection(w, st, "Summary", []Field{
		{Name: "Total Chunks", Value: strconv.Itoa(len(chunks))},
		{Name: "Size", Value: formatBytes(int64(c.Size()))},
	})
}

// HexDump writes p in the hexdump -C layout.
func HexDump(w io.Writer, p []byte) error {
	d := hex.Dumper(w)
	if _, err := d.Write(p); err != nil {
		return err
	}
	if err := d.Close(); err != nil {
		return fmt.Errorf("hex dump: %w", err)
	}
	return nil
}
