package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock parses a clock-style duration token ("M:SS" or "H:MM:SS")
// into total seconds. It returns false for anything else.
func ParseClock(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		// minute and second fields must stay below 60
		if i > 0 && n > 59 {
			return 0, false
		}
		nums[i] = n
	}

	if len(nums) == 2 {
		return nums[0]*60 + nums[1], true
	}
	return nums[0]*3600 + nums[1]*60 + nums[2], true
}

// FormatClock renders seconds as "M:SS", or "H:MM:SS" once an hour is reached.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatTotalMinutes renders an aggregate duration as "Xh Ym".
func FormatTotalMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
