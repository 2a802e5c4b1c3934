package scene

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Fingerprint returns a hex sha256 over the exact bits of every record in
// plan order. Two plans share a fingerprint only if they are value-for-value
// identical.
func Fingerprint(p Plan) string {
	h := sha256.New()
	var buf [8]byte
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	write(uint64(len(p.Records)))
	for _, r := range p.Records {
		write(uint64(int64(r.SpawnFrame)))
		write(math.Float64bits(r.X0))
		write(math.Float64bits(r.RotationSpeed))
		write(math.Float64bits(r.Drift))
	}
	return hex.EncodeToString(h.Sum(nil))
}
