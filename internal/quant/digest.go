package quant

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/mesh-intelligence/msfixture/pkg/types"
	"github.com/zeebo/blake3"
)

// Digest returns a hex BLAKE3 digest over the bundle's four files, each
// length-prefixed, in QuantBundle.Paths order. Two bundles synthesized from
// the same seed and design have equal digests.
func Digest(b types.QuantBundle) (string, error) {
	h := blake3.New()
	var size [8]byte
	for _, p := range b.Paths() {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("digest %s: %w", p, err)
		}
		binary.BigEndian.PutUint64(size[:], uint64(len(data)))
		h.Write(size[:])
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
