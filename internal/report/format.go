package report

import (
	"fmt"
	"time"
)

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d Bytes", size)
	}
	div := float64(size)
	exp := 0
	units := []string{"KiB", "MiB", "GiB", "TiB", "PiB"}
	for div >= unit && exp < len(units) {
		div /= unit
		exp++
	}
	// Three significant digits, the way MediaInfo prints sizes.
	switch {
	case div < 10:
		return fmt.Sprintf("%.2f %s", div, units[exp-1])
	case div < 100:
		return fmt.Sprintf("%.1f %s", div, units[exp-1])
	default:
		return fmt.Sprintf("%.0f %s", div, units[exp-1])
	}
}

func formatOffset(offset uint64) string {
	return fmt.Sprintf("%d (0x%X)", offset, offset)
}

func formatPixels(value uint32) string {
	if value == 1 {
		return "1 pixel"
	}
	return fmt.Sprintf("%d pixels", value)
}

func formatBitDepth(bits uint8) string {
	if bits == 1 {
		return "1 bit"
	}
	return fmt.Sprintf("%d bits", bits)
}

func formatCount(n int, singular string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %ss", n, singular)
}

// formatMonth keeps out-of-range stored months visible instead of letting
// time.Date roll them over.
func formatMonth(month uint8) string {
	if month < 1 || month > 12 {
		return "Invalid"
	}
	return time.Month(month).String()[:3]
}
