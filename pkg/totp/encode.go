package totp

import "encoding/binary"

const steamAlphabet = "23456789BCDFGHJKMNPQRTVWXY"

// truncate implements RFC 4226 dynamic truncation: the low nibble of the
// last digest byte selects four bytes, read big-endian with the sign bit
// cleared.
func truncate(sum []byte) (uint32, error) {
	if len(sum) == 0 {
		return 0, ErrDigestTooShort
	}
	offset := int(sum[len(sum)-1] & 0x0f)
	if offset+4 > len(sum) {
		return 0, ErrDigestTooShort
	}
	return binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff, nil
}

// encode writes value in the alphabet selected by digits and out.
func encode(value uint32, digits uint32, out OutputType) string {
	if digits == 0 {
		return encodeSteam(value, SteamDigits)
	}
	if out == OutputSteam {
		return encodeSteam(value, int(digits))
	}
	return encodeDecimal(value, int(digits))
}

// encodeDecimal writes the low length decimal digits of value, zero padded.
func encodeDecimal(value uint32, length int) string {
	b := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		if value == 0 {
			b[i] = '0'
			continue
		}
		b[i] = byte('0' + value%10)
		value /= 10
	}
	return string(b)
}

// encodeSteam writes value least significant symbol first.
func encodeSteam(value uint32, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = steamAlphabet[value%uint32(len(steamAlphabet))]
		value /= uint32(len(steamAlphabet))
	}
	return string(b)
}
