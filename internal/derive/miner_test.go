package derive

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifyMinerHexPatterns(t *testing.T) {
	tests := []struct {
		name        string
		coinbaseHex string
		want        string
	}{
		{name: "foundry tag", coinbaseHex: "466f756e647279", want: "Foundry USA"},
		{name: "foundry tag embedded", coinbaseHex: "03abcdef466f756e64727920555341deadbeef", want: "Foundry USA"},
		{name: "foundry tag upper case hex", coinbaseHex: "466F756E647279", want: "Foundry USA"},
		{name: "antpool tag", coinbaseHex: "0011416e74506f6f6c2233", want: "AntPool"},
		{name: "slush tag", coinbaseHex: "2f736c7573682f", want: "Braiins Pool"},
		{name: "empty script", coinbaseHex: "", want: UnknownMiner},
		{name: "no match", coinbaseHex: "deadbeefcafe", want: UnknownMiner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IdentifyMiner(tt.coinbaseHex))
		})
	}
}

func TestIdentifyMinerASCIIPass(t *testing.T) {
	// Lower-case "f2pool" does not hit the raw hex table (which encodes the
	// cased brand name) and must be found by the printable-ASCII pass.
	script := hex.EncodeToString([]byte("/mined by f2pool workers/"))
	assert.Equal(t, "F2Pool", IdentifyMiner(script))

	// Non-printable and undecodable pairs are skipped, not fatal.
	assert.Equal(t, "F2Pool", IdentifyMiner("zz01026632706f6f6c"))

	script = hex.EncodeToString([]byte{0x03, 0xa1, 'v', 'i', 'a', 'b', 't', 'c', 0x00})
	assert.Equal(t, "ViaBTC", IdentifyMiner(script))
}

func TestIdentifyMinerHexPassPrecedesASCIIPass(t *testing.T) {
	// The script decodes to ASCII "foundry" followed by raw bytes spelling
	// "Luxor"; the raw hex pass sees Luxor first and must win regardless of
	// the ASCII table order.
	script := hex.EncodeToString([]byte("foundry")) + "4c75786f72"
	assert.Equal(t, "Luxor", IdentifyMiner(script))
}

func TestIdentifyMinerPayoutAddresses(t *testing.T) {
	assert.Equal(t, "F2Pool", IdentifyMiner("", "1KFHE7w8BhaENAswwryaoccDb6qcT6DbYY"))
	assert.Equal(t, "AntPool", IdentifyMiner("deadbeef", "unmatched", "12dRugNcdxK39288NjcDV4GX7rMsKCGn6B"))
	assert.Equal(t, UnknownMiner, IdentifyMiner("", "1NoSuchAddress"))
}

func TestIdentifyMinerGenericPoolFallback(t *testing.T) {
	// ASCII "xyzpool" matches no signature but contains the word "pool".
	script := hex.EncodeToString([]byte("xyzpool"))
	assert.Equal(t, "Mining Pool", IdentifyMiner(script))
}

func TestIdentifyMinerIdempotent(t *testing.T) {
	script := hex.EncodeToString([]byte("/mined by f2pool workers/"))
	assert.Equal(t, IdentifyMiner(script), IdentifyMiner(script))
}
