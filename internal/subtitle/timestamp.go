package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatTimestamp renders seconds as HH:MM:SS,mmm. The value is decomposed
// with floor division and the milliseconds are truncated, never rounded, so
// 65.4 becomes 00:01:05,400. Hours are not capped.
func FormatTimestamp(seconds float64) string {
	h, m, s, ms := decompose(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// same decomposition with the WebVTT separator
func formatVTTTimestamp(seconds float64) string {
	h, m, s, ms := decompose(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

func decompose(seconds float64) (h, m, s, ms int) {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	minutes := math.Floor(seconds / 60)
	secs := math.Mod(seconds, 60)
	hours := math.Floor(minutes / 60)
	minutes = math.Mod(minutes, 60)

	whole := math.Trunc(secs)
	return int(hours), int(minutes), int(whole), int((secs - whole) * 1000)
}

// ParseTimestamp reads HH:MM:SS,mmm (a period is accepted for the
// millisecond separator) into seconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	secs, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+secs) + float64(millis)/1000, nil
}

// ParseTiming splits a "start --> end" line.
func ParseTiming(line string) (start, end float64, err error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	if start, err = ParseTimestamp(parts[0]); err != nil {
		return 0, 0, err
	}
	if end, err = ParseTimestamp(parts[1]); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
