package derive

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unknown is the sentinel rendered for missing or invalid display input.
const Unknown = "Unknown"

// justNow is rendered when less than one second has elapsed.
const justNow = "Just now"

const satoshisPerBTC = 100_000_000

// groupedPrinter renders integers with thousands separators.
var groupedPrinter = message.NewPrinter(language.English)

// FormatBTCAmount renders a satoshi amount as a BTC string with exactly eight
// decimal digits. A nil amount renders the Unknown sentinel; negative values
// pass through as-is.
func FormatBTCAmount(satoshis *int64) string {
	if satoshis == nil {
		return Unknown
	}
	return fmt.Sprintf("%.8f BTC", float64(*satoshis)/satoshisPerBTC)
}

// FormatNumber renders an integer with thousands grouping.
func FormatNumber(value *int64) string {
	if value == nil {
		return Unknown
	}
	return groupedPrinter.Sprintf("%d", *value)
}

// FormatFileSize renders a byte count using the largest unit among B/KB/MB/GB
// that keeps the scaled value under 1024, capping at GB. Bytes render with no
// decimals, everything else with two.
func FormatFileSize(bytes *int64) string {
	if bytes == nil {
		return Unknown
	}
	units := []string{"B", "KB", "MB", "GB"}
	value := float64(*bytes)
	idx := 0
	for idx < len(units)-1 && value >= 1024 {
		value /= 1024
		idx++
	}
	if idx == 0 {
		return fmt.Sprintf("%.0f %s", value, units[idx])
	}
	return fmt.Sprintf("%.2f %s", value, units[idx])
}

// TruncateMiddle shortens a long identifier to its first startChars and last
// endChars characters joined by an ellipsis. Strings that already fit are
// returned unchanged.
func TruncateMiddle(s string, startChars, endChars int) string {
	if s == "" {
		return ""
	}
	if startChars < 0 {
		startChars = 0
	}
	if endChars < 0 {
		endChars = 0
	}
	if len(s) <= startChars+endChars {
		return s
	}
	return s[:startChars] + "..." + s[len(s)-endChars:]
}

// TruncateHash shortens a hash or txid for display with the conventional
// six-character head and tail.
func TruncateHash(s string) string {
	return TruncateMiddle(s, 6, 6)
}

// FormatTimestamp renders a unix timestamp as YYYY-MM-DD HH:MM in the local
// timezone. Zero renders the Unknown sentinel.
func FormatTimestamp(unixSeconds int64) string {
	if unixSeconds == 0 {
		return Unknown
	}
	return time.Unix(unixSeconds, 0).Format("2006-01-02 15:04")
}

// timeAgoUnits are ordered largest first; the first unit with a non-zero
// quotient is rendered.
var timeAgoUnits = []struct {
	name    string
	seconds int64
}{
	{"year", 31_536_000},
	{"month", 2_592_000},
	{"week", 604_800},
	{"day", 86_400},
	{"hour", 3_600},
	{"minute", 60},
	{"second", 1},
}

// FormatTimeAgo renders a unix timestamp as a relative age against the
// current wall clock. Zero renders the Unknown sentinel.
func FormatTimeAgo(unixSeconds int64) string {
	return FormatTimeAgoAt(unixSeconds, time.Now())
}

// FormatTimeAgoAt is the clock-injected form of FormatTimeAgo used wherever a
// deterministic "now" is required.
func FormatTimeAgoAt(unixSeconds int64, now time.Time) string {
	if unixSeconds == 0 {
		return Unknown
	}
	elapsed := now.Unix() - unixSeconds
	if elapsed < 1 {
		return justNow
	}
	for _, unit := range timeAgoUnits {
		n := elapsed / unit.seconds
		if n < 1 {
			continue
		}
		name := unit.name
		if n != 1 {
			name += "s"
		}
		return fmt.Sprintf("%d %s ago", n, name)
	}
	return justNow
}
