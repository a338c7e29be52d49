package derive

import (
	"encoding/hex"
	"strings"
)

// UnknownMiner is returned when no identification pass matches.
const UnknownMiner = "Unknown Miner"

// genericPool labels blocks whose coinbase mentions "pool" without matching
// any known signature.
const genericPool = "Mining Pool"

// hexPoolPatterns are scanned against the raw lower-cased coinbase hex before
// any decoding. Earlier entries win on overlapping substrings, so the slice
// order is authoritative.
var hexPoolPatterns = []struct {
	pattern string
	pool    string
}{
	{"466f756e647279", "Foundry USA"},  // "Foundry"
	{"416e74506f6f6c", "AntPool"},      // "AntPool"
	{"4632506f6f6c", "F2Pool"},         // "F2Pool"
	{"2f736c7573682f", "Braiins Pool"}, // "/slush/"
	{"566961425443", "ViaBTC"},         // "ViaBTC"
	{"62696e616e6365", "Binance Pool"}, // "binance"
	{"506f6f6c696e", "Poolin"},         // "Poolin"
	{"4c75786f72", "Luxor"},            // "Luxor"
	{"4d415241", "MARA Pool"},          // "MARA"
	{"6274632e636f6d", "BTC.com"},      // "btc.com"
	{"53424943727970746f", "SBI Crypto"},
	{"537069646572506f6f6c", "SpiderPool"},
	{"736563706f6f6c", "SECPOOL"},
	{"6f6365616e2e78797a", "OCEAN"}, // "ocean.xyz"
}

// asciiPoolSignatures are matched against the printable-ASCII decoding of the
// coinbase script, lower-cased. Order matters the same way as for the hex
// patterns.
var asciiPoolSignatures = []struct {
	pool string
	tags []string
}{
	{"Foundry USA", []string{"foundry usa", "foundry"}},
	{"AntPool", []string{"antpool"}},
	{"F2Pool", []string{"f2pool", "/f2p/"}},
	{"Braiins Pool", []string{"slush", "braiins"}},
	{"ViaBTC", []string{"viabtc"}},
	{"Binance Pool", []string{"binance"}},
	{"Poolin", []string{"poolin"}},
	{"Luxor", []string{"luxor"}},
	{"MARA Pool", []string{"mara pool", "marapool", "mara made in usa"}},
	{"BTC.com", []string{"btc.com", "btccom"}},
	{"SBI Crypto", []string{"sbicrypto", "sbi crypto"}},
	{"SpiderPool", []string{"spiderpool"}},
	{"SECPOOL", []string{"secpool"}},
	{"OCEAN", []string{"ocean.xyz"}},
	{"Ultimus Pool", []string{"ultimuspool"}},
	{"EMCD", []string{"emcd"}},
}

// poolPayoutAddresses maps well-known coinbase payout addresses to pools.
// Used as a fallback when the script itself carries no recognizable tag.
var poolPayoutAddresses = map[string]string{
	"1KFHE7w8BhaENAswwryaoccDb6qcT6DbYY":         "F2Pool",
	"12dRugNcdxK39288NjcDV4GX7rMsKCGn6B":         "AntPool",
	"bc1qjl8uwezzlech723lpnyuza0h2cdkvxvh54v3dn": "Foundry USA",
	"18cBEMRxXHqzWWCxZNtU91F5sbUNKhL5PX":         "ViaBTC",
	"bc1qte0s6pz7gsdlqq2cf6hv5mxcfksykyyyjkdfd5": "Luxor",
	"34Jpa4Eu3ApoPVUKNTN2WeuXVVq1jzxgPi":         "Binance Pool",
	"bc1qxhs0a8nu5rztvhyf5zh5lhjqv5lv22ljhn0ahm": "Braiins Pool",
	"15MdAHnkxt9TMC2Rj595hsg8Hnv693TJ9q":         "MARA Pool",
	"3KJrsjfg1dD6CrsTeHdHVH3KqMpvL2XWQn":         "Poolin",
	"bc1qc4w6mhtdrsk4mfg2lnr0tyzvjkywv7kca0ulxu": "OCEAN",
}

// IdentifyMiner classifies the mining pool behind a block from its coinbase
// script hex, falling back to the coinbase transaction's payout addresses.
// Passes run in a fixed order and the first match wins; decode failures are
// treated as "no match" for that pass. Returns UnknownMiner when nothing
// matches.
func IdentifyMiner(coinbaseHex string, payoutAddrs ...string) string {
	if coinbaseHex == "" && len(payoutAddrs) == 0 {
		return UnknownMiner
	}

	lowerHex := strings.ToLower(coinbaseHex)

	for _, entry := range hexPoolPatterns {
		if strings.Contains(lowerHex, strings.ToLower(entry.pattern)) {
			return entry.pool
		}
	}

	if decoded := decodePrintable(lowerHex); decoded != "" {
		lowered := strings.ToLower(decoded)
		for _, sig := range asciiPoolSignatures {
			for _, tag := range sig.tags {
				if strings.Contains(lowered, tag) {
					return sig.pool
				}
			}
		}
	}

	for _, addr := range payoutAddrs {
		if pool, ok := poolPayoutAddresses[addr]; ok {
			return pool
		}
	}

	// "pool" in ASCII.
	if strings.Contains(lowerHex, "706f6f6c") {
		return genericPool
	}

	return UnknownMiner
}

// decodePrintable decodes a hex string two characters at a time, keeping only
// printable ASCII bytes. Undecodable pairs are skipped rather than aborting
// the scan; a trailing odd character is ignored.
func decodePrintable(hexStr string) string {
	var sb strings.Builder
	for i := 0; i+1 < len(hexStr); i += 2 {
		b, err := hex.DecodeString(hexStr[i : i+2])
		if err != nil || len(b) != 1 {
			continue
		}
		if b[0] >= 32 && b[0] <= 126 {
			sb.WriteByte(b[0])
		}
	}
	return sb.String()
}
