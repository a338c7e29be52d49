// Package derive implements pure derivations over raw blockchain data:
// difficulty from the compact bits encoding, miner identification from
// coinbase bytes, display formatting, and transaction economics aggregation.
// Every exported operation is total: bad input yields a sentinel, never a
// panic or an error.
package derive

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// maxTarget is the conventional difficulty-1 target, 0xFFFF * 2^208.
var maxTarget = new(big.Int).Lsh(big.NewInt(0xFFFF), 208)

// CompactToTarget expands Bitcoin's compact bits encoding into the full
// proof-of-work target. The top byte is the exponent, the remaining three
// bytes the mantissa: target = mantissa * 2^(8*(exponent-3)). The shift
// exceeds 64 bits for realistic headers, hence big.Int.
func CompactToTarget(bits uint32) *big.Int {
	exponent := bits >> 24
	mantissa := bits & 0x00FFFFFF
	target := new(big.Int).SetUint64(uint64(mantissa))
	if exponent <= 3 {
		return target.Rsh(target, uint(8*(3-exponent)))
	}
	return target.Lsh(target, uint(8*(exponent-3)))
}

// Difficulty converts a compact target into the difficulty ratio relative to
// the minimum-difficulty target. A zero exponent or mantissa marks an
// undecodable header and yields 0. The genesis encoding 0x1d00ffff yields 1.
func Difficulty(bits uint32) float64 {
	exponent := bits >> 24
	mantissa := bits & 0x00FFFFFF
	if exponent == 0 || mantissa == 0 {
		return 0
	}
	target := CompactToTarget(bits)
	if target.Sign() <= 0 {
		return 0
	}
	ratio := new(big.Float).Quo(new(big.Float).SetInt(maxTarget), new(big.Float).SetInt(target))
	out, _ := ratio.Float64()
	return out
}

// DifficultyFrom resolves a bits value out of loosely typed API data and
// returns its difficulty. Accepted inputs: integer kinds, JSON numbers, hex
// strings with an optional 0x prefix, and maps carrying a "bits" field with
// "nBits"/"nbits" fallbacks. Anything unresolvable yields 0.
func DifficultyFrom(value any) float64 {
	bits, ok := resolveBits(value)
	if !ok {
		return 0
	}
	return Difficulty(bits)
}

func resolveBits(value any) (uint32, bool) {
	switch v := value.(type) {
	case uint32:
		return v, true
	case uint64:
		if v > math.MaxUint32 {
			return 0, false
		}
		return uint32(v), true
	case uint:
		if uint64(v) > math.MaxUint32 {
			return 0, false
		}
		return uint32(v), true
	case int:
		if v < 0 || int64(v) > math.MaxUint32 {
			return 0, false
		}
		return uint32(v), true
	case int32:
		if v < 0 {
			return 0, false
		}
		return uint32(v), true
	case int64:
		if v < 0 || v > math.MaxUint32 {
			return 0, false
		}
		return uint32(v), true
	case float64:
		if v < 0 || v > math.MaxUint32 || v != math.Trunc(v) {
			return 0, false
		}
		return uint32(v), true
	case string:
		s := strings.TrimPrefix(strings.TrimSpace(v), "0x")
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return 0, false
		}
		return uint32(parsed), true
	case map[string]any:
		for _, key := range []string{"bits", "nBits", "nbits"} {
			if nested, ok := v[key]; ok {
				if bits, resolved := resolveBits(nested); resolved {
					return bits, true
				}
			}
		}
		return 0, false
	default:
		return 0, false
	}
}
