package templatename

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Key is the structural hash of a name's constituents.
type Key [32]byte

func (k Key) String() string { return hex.EncodeToString(k[:8]) }

// Profiler accumulates the identity-relevant fields of a name into a Key.
type Profiler struct {
	h   *blake3.Hasher
	buf [binary.MaxVarintLen64]byte
}

// NewProfiler returns an empty profiler.
func NewProfiler() *Profiler {
	return &Profiler{h: blake3.New()}
}

// AddUint64 mixes v into the profile.
func (p *Profiler) AddUint64(v uint64) {
	n := binary.PutUvarint(p.buf[:], v)
	p.h.Write(p.buf[:n])
}

// AddBool mixes b into the profile.
func (p *Profiler) AddBool(b bool) {
	if b {
		p.AddUint64(1)
	} else {
		p.AddUint64(0)
	}
}

// AddString mixes a length-prefixed string into the profile.
func (p *Profiler) AddString(s string) {
	p.AddUint64(uint64(len(s)))
	p.h.Write([]byte(s))
}

// Sum returns the key and resets the profiler.
func (p *Profiler) Sum() Key {
	var k Key
	copy(k[:], p.h.Sum(nil))
	p.h.Reset()
	return k
}
