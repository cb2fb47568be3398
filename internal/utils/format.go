// Package utils holds small helpers shared by the gallery and its handlers.
package utils

import "fmt"

// HumanSize renders a byte count with binary units, e.g. "1.5 KiB".
// Negative sizes render as "0 B".
func HumanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", max(size, 0))
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
