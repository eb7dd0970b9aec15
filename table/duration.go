package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

// FormatDuration renders d as [-][d.]hh:mm:ss[.fffffff].
func FormatDuration(d time.Duration) string {
	var b strings.Builder
	// unsigned so the magnitude of the minimum duration fits
	u := uint64(d)
	if d < 0 {
		b.WriteByte('-')
		u = -u
	}
	days := u / uint64(day)
	u -= days * uint64(day)
	hours := u / uint64(time.Hour)
	u -= hours * uint64(time.Hour)
	minutes := u / uint64(time.Minute)
	u -= minutes * uint64(time.Minute)
	seconds := u / uint64(time.Second)
	u -= seconds * uint64(time.Second)

	if days > 0 {
		fmt.Fprintf(&b, "%d.", days)
	}
	fmt.Fprintf(&b, "%02d:%02d:%02d", hours, minutes, seconds)
	if ticks := u / 100; ticks > 0 {
		fmt.Fprintf(&b, ".%07d", ticks)
	}
	return b.String()
}

// ParseDuration accepts [-][d.]hh:mm[:ss[.fffffff]], a bare day count, or Go
// duration syntax such as "1h30m".
func ParseDuration(s string) (time.Duration, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	negative := false
	body := text
	if body[0] == '-' {
		negative = true
		body = body[1:]
	}

	if !strings.Contains(body, ":") {
		if days, err := strconv.ParseInt(body, 10, 32); err == nil {
			d := time.Duration(days) * day
			if negative {
				d = -d
			}
			return d, nil
		}
		d, err := time.ParseDuration(text)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return d, nil
	}

	var total time.Duration
	clock := body
	if dot := strings.IndexByte(body, '.'); dot >= 0 && dot < strings.IndexByte(body, ':') {
		days, err := strconv.ParseInt(body[:dot], 10, 32)
		if err != nil || days < 0 {
			return 0, fmt.Errorf("invalid duration %q: bad day count", s)
		}
		total = time.Duration(days) * day
		clock = body[dot+1:]
	}

	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var fraction string
	if len(parts) == 3 {
		if dot := strings.IndexByte(parts[2], '.'); dot >= 0 {
			fraction = parts[2][dot+1:]
			parts[2] = parts[2][:dot]
		}
	}

	limits := []int64{24, 60, 60}
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	for i, part := range parts {
		n, err := strconv.ParseInt(part, 10, 32)
		if err != nil || n < 0 || n >= limits[i] {
			return 0, fmt.Errorf("invalid duration %q: bad component %q", s, part)
		}
		total += time.Duration(n) * units[i]
	}

	if fraction != "" {
		if len(fraction) > 7 {
			return 0, fmt.Errorf("invalid duration %q: too many fractional digits", s)
		}
		ticks, err := strconv.ParseInt(fraction+strings.Repeat("0", 7-len(fraction)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: bad fraction", s)
		}
		total += time.Duration(ticks) * 100
	}

	if negative {
		total = -total
	}
	return total, nil
}
