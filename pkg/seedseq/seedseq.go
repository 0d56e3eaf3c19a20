// Package seedseq implements seed sequences: deterministic expanders of a
// small amount of entropy into as many 32-bit words as an engine needs to
// fill its state.
package seedseq

import (
	"encoding/binary"

	sha256 "github.com/minio/sha256-simd"
)

// Sequence fills dst with 32-bit seed words. Generating into slices of the
// same length must be deterministic.
type Sequence interface {
	Generate(dst []uint32)
}

// SeedSeq is the seed_seq algorithm of the C++ standard library.
type SeedSeq struct {
	entropy []uint32
}

// New creates a SeedSeq over the given entropy words.
func New(entropy ...uint32) *SeedSeq {
	return &SeedSeq{entropy: append([]uint32(nil), entropy...)}
}

// FromPassphrase creates a SeedSeq whose entropy is the SHA-256 digest of
// passphrase read as eight little-endian words.
func FromPassphrase(passphrase string) *SeedSeq {
	sum := sha256.Sum256([]byte(passphrase))
	entropy := make([]uint32, len(sum)/4)
	for i := range entropy {
		entropy[i] = binary.LittleEndian.Uint32(sum[4*i:])
	}
	return &SeedSeq{entropy: entropy}
}

// Size returns the number of entropy words.
func (s *SeedSeq) Size() int { return len(s.entropy) }

// Generate implements Sequence.
func (s *SeedSeq) Generate(dst []uint32) {
	n := len(dst)
	if n == 0 {
		return
	}
	for i := range dst {
		dst[i] = 0x8b8b8b8b
	}

	size := len(s.entropy)
	var t int
	switch {
	case n >= 623:
		t = 11
	case n >= 68:
		t = 7
	case n >= 39:
		t = 5
	case n >= 7:
		t = 3
	default:
		t = (n - 1) / 2
	}
	p := (n - t) / 2
	q := p + t
	m := size + 1
	if n > m {
		m = n
	}

	mix := func(x uint32) uint32 { return x ^ (x >> 27) }

	for k := 0; k < m; k++ {
		r1 := 1664525 * mix(dst[k%n]^dst[(k+p)%n]^dst[(k+n-1)%n])
		var r2 uint32
		switch {
		case k == 0:
			r2 = r1 + uint32(size)
		case k <= size:
			r2 = r1 + uint32(k%n) + s.entropy[k-1]
		default:
			r2 = r1 + uint32(k%n)
		}
		dst[(k+p)%n] += r1
		dst[(k+q)%n] += r2
		dst[k%n] = r2
	}

	for k := m; k < m+n; k++ {
		r3 := 1566083941 * mix(dst[k%n]+dst[(k+p)%n]+dst[(k+n-1)%n])
		r4 := r3 - uint32(k%n)
		dst[(k+p)%n] ^= r3
		dst[(k+q)%n] ^= r4
		dst[k%n] = r4
	}
}

// Inserter is a Sequence replaying a fixed list of w-bit words, so that an
// engine seeded from it receives exactly those words as its state. Values
// narrower than 32 bits are packed low first; wider values are split low
// word first. Words past the end of the list are zero.
type Inserter struct {
	vals []uint32
}

// NewInserter packs values of width w (8, 16, 32 or 64) into an Inserter.
func NewInserter(w uint, values ...uint64) *Inserter {
	var vals []uint32
	switch {
	case w == 32:
		vals = make([]uint32, len(values))
		for i, v := range values {
			vals[i] = uint32(v)
		}
	case w < 32:
		checkWidth(w)
		vals = make([]uint32, (uint(len(values))*w+31)/32)
		idx, used := 0, uint(0)
		for _, v := range values {
			vals[idx] |= uint32(v&(1<<w-1)) << used
			used += w
			if used == 32 {
				used = 0
				idx++
			}
		}
	default:
		checkWidth(w)
		ratio := int(w / 32)
		vals = make([]uint32, 0, ratio*len(values))
		for _, v := range values {
			for j := 0; j < ratio; j++ {
				vals = append(vals, uint32(v>>(32*j)))
			}
		}
	}
	return &Inserter{vals: vals}
}

// Generate implements Sequence.
func (s *Inserter) Generate(dst []uint32) {
	n := copy(dst, s.vals)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// Filler draws enough 32-bit words from a Sequence, once, to produce n words
// of width w and hands them out in order.
type Filler struct {
	seeds []uint32
	w     uint
	idx   int
	used  uint
}

// NewFiller generates ceil(n*w/32) words from seq. w must be a power of two
// no larger than 64.
func NewFiller(seq Sequence, w uint, n int) *Filler {
	checkWidth(w)
	f := &Filler{
		seeds: make([]uint32, (uint(n)*w+31)/32),
		w:     w,
	}
	seq.Generate(f.seeds)
	return f
}

// Next returns the next w-bit word.
func (f *Filler) Next() uint64 {
	switch {
	case f.w == 32:
		v := f.seeds[f.idx]
		f.idx++
		return uint64(v)
	case f.w < 32:
		v := uint64(f.seeds[f.idx]>>f.used) & (1<<f.w - 1)
		f.used += f.w
		if f.used == 32 {
			f.used = 0
			f.idx++
		}
		return v
	default:
		var v uint64
		for i := uint(0); i < f.w/32; i++ {
			v |= uint64(f.seeds[f.idx]) << (32 * i)
			f.idx++
		}
		return v
	}
}

// Fill returns the next n w-bit words.
func (f *Filler) Fill(n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = f.Next()
	}
	return out
}

// Words generates n words of width w from seq.
func Words(seq Sequence, w uint, n int) []uint64 {
	return NewFiller(seq, w, n).Fill(n)
}

func checkWidth(w uint) {
	switch w {
	case 8, 16, 32, 64:
	default:
		panic("seedseq: word width must be 8, 16, 32 or 64")
	}
}
