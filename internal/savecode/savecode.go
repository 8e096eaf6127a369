// Package savecode encodes a game's progress as a 16 digit hexadecimal code
// the player can write down and enter later.
//
// Layout, one hex digit per position:
//
//	0      'E' verifier
//	1-6    score (24 bits, clamped)
//	7      '7' verifier
//	8-9    level (0-255)
//	10     difficulty (0-15)
//	11     destroyed-base flags, bit i for base i
//	12     destroyed-satellite flags, bit i for satellite i
//	13     sum of the data digits mod 16
//	14     'A' verifier
//	15     xor of the data digits
package savecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Length is the number of digits in a code.
const Length = 16

const (
	maxScore      = 0xFFFFFF
	maxLevel      = 0xFF
	maxDifficulty = 0xF
)

var verifiers = map[int]byte{0: 'E', 7: '7', 14: 'A'}

// ErrInvalidCode is returned for any code that fails validation.
var ErrInvalidCode = errors.New("invalid save code")

// LoadData is the progress stored in a code. A true flag means the base or
// satellite is destroyed.
type LoadData struct {
	Score      int
	Level      int
	Difficulty int
	Bases      [4]bool
	Satellites [4]bool
}

func flags(f [4]bool) int {
	n := 0
	for i, set := range f {
		if set {
			n |= 1 << i
		}
	}
	return n
}

func unflags(n int) [4]bool {
	var f [4]bool
	for i := range f {
		f[i] = n&(1<<i) != 0
	}
	return f
}

func clamp(v, hi int) int {
	return min(max(v, 0), hi)
}

// Encode returns the code for d. Out of range values are clamped.
func Encode(d LoadData) string {
	data := fmt.Sprintf("%06X%02X%X%X%X",
		clamp(d.Score, maxScore),
		clamp(d.Level, maxLevel),
		clamp(d.Difficulty, maxDifficulty),
		flags(d.Bases),
		flags(d.Satellites),
	)
	sum, xor := checksums(data)

	var b strings.Builder
	b.Grow(Length)
	b.WriteByte(verifiers[0])
	b.WriteString(data[:6])
	b.WriteByte(verifiers[7])
	b.WriteString(data[6:])
	fmt.Fprintf(&b, "%X", sum)
	b.WriteByte(verifiers[14])
	fmt.Fprintf(&b, "%X", xor)
	return b.String()
}

func checksums(data string) (sum, xor int) {
	for i := 0; i < len(data); i++ {
		v := hexValue(data[i])
		sum += v
		xor ^= v
	}
	return sum % 16, xor
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// Decode parses a code. Lowercase digits and surrounding whitespace are
// accepted. Any other deviation returns an error wrapping ErrInvalidCode.
func Decode(code string) (LoadData, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != Length {
		return LoadData{}, fmt.Errorf("%w: length %d, want %d", ErrInvalidCode, len(code), Length)
	}
	for pos, want := range verifiers {
		if code[pos] != want {
			return LoadData{}, fmt.Errorf("%w: verifier at %d", ErrInvalidCode, pos)
		}
	}
	for i := 0; i < Length; i++ {
		if hexValue(code[i]) < 0 {
			return LoadData{}, fmt.Errorf("%w: %q is not a hex digit", ErrInvalidCode, code[i])
		}
	}

	data := code[1:7] + code[8:13]
	sum, xor := checksums(data)
	if hexValue(code[13]) != sum || hexValue(code[15]) != xor {
		return LoadData{}, fmt.Errorf("%w: checksum mismatch", ErrInvalidCode)
	}

	score, err := strconv.ParseUint(data[0:6], 16, 32)
	if err != nil {
		return LoadData{}, fmt.Errorf("%w: score: %v", ErrInvalidCode, err)
	}
	level, err := strconv.ParseUint(data[6:8], 16, 8)
	if err != nil {
		return LoadData{}, fmt.Errorf("%w: level: %v", ErrInvalidCode, err)
	}

	return LoadData{
		Score:      int(score),
		Level:      int(level),
		Difficulty: hexValue(data[8]),
		Bases:      unflags(hexValue(data[9])),
		Satellites: unflags(hexValue(data[10])),
	}, nil
}
