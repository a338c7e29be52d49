package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func i64(v int64) *int64 {
	return &v
}

func TestFormatBTCAmount(t *testing.T) {
	tests := []struct {
		name     string
		satoshis *int64
		want     string
	}{
		{name: "one btc", satoshis: i64(100_000_000), want: "1.00000000 BTC"},
		{name: "one satoshi", satoshis: i64(1), want: "0.00000001 BTC"},
		{name: "block subsidy", satoshis: i64(6_250_000_000), want: "62.50000000 BTC"},
		{name: "zero", satoshis: i64(0), want: "0.00000000 BTC"},
		{name: "negative passes through", satoshis: i64(-150_000_000), want: "-1.50000000 BTC"},
		{name: "missing", satoshis: nil, want: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBTCAmount(tt.satoshis))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name  string
		value *int64
		want  string
	}{
		{name: "grouped", value: i64(1_234_567), want: "1,234,567"},
		{name: "small", value: i64(999), want: "999"},
		{name: "zero", value: i64(0), want: "0"},
		{name: "missing", value: nil, want: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.value))
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes *int64
		want  string
	}{
		{name: "bytes", bytes: i64(512), want: "512 B"},
		{name: "kilobytes", bytes: i64(2048), want: "2.00 KB"},
		{name: "fractional kilobytes", bytes: i64(1536), want: "1.50 KB"},
		{name: "megabytes", bytes: i64(1_048_576), want: "1.00 MB"},
		{name: "gigabytes", bytes: i64(1_073_741_824), want: "1.00 GB"},
		{name: "capped at gigabytes", bytes: i64(2_199_023_255_552), want: "2048.00 GB"},
		{name: "missing", bytes: nil, want: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFileSize(tt.bytes))
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		start, end int
		want       string
	}{
		{name: "long hash", in: "1234567890abcdef1234567890abcdef", start: 6, end: 6, want: "123456...abcdef"},
		{name: "fits unchanged", in: "12345", start: 3, end: 3, want: "12345"},
		{name: "exact boundary unchanged", in: "123456", start: 3, end: 3, want: "123456"},
		{name: "empty", in: "", start: 6, end: 6, want: ""},
		{name: "negative counts clamped", in: "abcdef", start: -1, end: 2, want: "...ef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateMiddle(tt.in, tt.start, tt.end))
		})
	}
}

func TestTruncateHash(t *testing.T) {
	assert.Equal(t, "000000...54cdef", TruncateHash("00000000000000000001a2b3c4d5e6f7890123456789abcdef0123456754cdef"))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "Unknown", FormatTimestamp(0))

	unix := int64(1231006505) // genesis block time
	want := time.Unix(unix, 0).Format("2006-01-02 15:04")
	assert.Equal(t, want, FormatTimestamp(unix))
}

func TestFormatTimeAgoAt(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		unix int64
		want string
	}{
		{name: "missing", unix: 0, want: "Unknown"},
		{name: "same instant", unix: now.Unix(), want: "Just now"},
		{name: "future timestamp", unix: now.Unix() + 50, want: "Just now"},
		{name: "one second", unix: now.Unix() - 1, want: "1 second ago"},
		{name: "one minute", unix: now.Unix() - 60, want: "1 minute ago"},
		{name: "two minutes", unix: now.Unix() - 120, want: "2 minutes ago"},
		{name: "one hour", unix: now.Unix() - 3600, want: "1 hour ago"},
		{name: "two hours", unix: now.Unix() - 7200, want: "2 hours ago"},
		{name: "one day", unix: now.Unix() - 86_400, want: "1 day ago"},
		{name: "one week", unix: now.Unix() - 604_800, want: "1 week ago"},
		{name: "one month", unix: now.Unix() - 2_592_000, want: "1 month ago"},
		{name: "two years", unix: now.Unix() - 2*31_536_000, want: "2 years ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeAgoAt(tt.unix, now))
		})
	}
}
