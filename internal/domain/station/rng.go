package station

import (
	"encoding/binary"
	"math/rand/v2"

	"lukechampine.com/blake3"
)

// tickRNG derives the random stream of one tick from the station seed and the
// tick number, so a catch-up split over several passes draws the same numbers.
func tickRNG(seed uint64, tick int64) *rand.Rand {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(tick))
	sum := blake3.Sum256(buf[:])
	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(sum[:8]),
		binary.LittleEndian.Uint64(sum[8:16]),
	))
}
