// Package format turns primitive values into display strings.
package format

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Number groups the digits of n in threes from the right with commas:
// 1234567 becomes "1,234,567" and 999 stays "999".
func Number(n int) string {
	return humanize.Comma(int64(n))
}

// ViewCount is the meta line suffix shown under a video card.
func ViewCount(n int) string {
	return Number(n) + " views"
}

// Duration formats a length in seconds as M:SS.
func Duration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
