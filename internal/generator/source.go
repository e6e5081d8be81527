package generator

import (
	crand "crypto/rand"
	"encoding/binary"
)

// cryptoSource is a math/rand source reading from crypto/rand.
type cryptoSource struct{}

func (cryptoSource) Int63() int64 {
	return int64(cryptoSource{}.Uint64() & (1<<63 - 1))
}

func (cryptoSource) Uint64() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Seed is a no-op; the system entropy pool cannot be reseeded.
func (cryptoSource) Seed(int64) {}
