package sdruntime

import (
	"crypto/rand"
	"encoding/binary"
)

// RandomSeed draws a new non-negative seed for image generation.
// Seeds are recorded alongside each result so generations can be reproduced.
func RandomSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively unheard of; a fixed seed keeps
		// the generation path alive rather than panicking
		return 42
	}

	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	return seed
}
