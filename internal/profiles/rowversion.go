package profiles

import "encoding/binary"

// rowVersionSize is the width of the concurrency token stored in user_profile.timer.
const rowVersionSize = 8

// initialRowVersion is assigned to every freshly inserted profile.
func initialRowVersion() []byte {
	return encodeRowVersion(1)
}

// nextRowVersion returns the token that supersedes current. Tokens of the wrong
// width are treated as version zero.
func nextRowVersion(current []byte) []byte {
	var n uint64
	if len(current) == rowVersionSize {
		n = binary.BigEndian.Uint64(current)
	}
	return encodeRowVersion(n + 1)
}

func encodeRowVersion(n uint64) []byte {
	buf := make([]byte, rowVersionSize)
	binary.BigEndian.PutUint64(buf, n)
	return buf
}
