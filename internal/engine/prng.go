package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Rand is the only randomness the tables consume. Intn returns a uniform value in [0,n).
type Rand interface {
	Intn(n int) int
}

// SeedFromString returns a 64-bit seed from an arbitrary string using SHA256.
func SeedFromString(s string) uint64 {
	h := sha256.Sum256([]byte(s))
	return binary.LittleEndian.Uint64(h[:8])
}

// Derive returns a deterministic child seed from a base seed and a label using HMAC-SHA256.
// Labels are stable strings such as "game#0" or "game#0:turns".
func Derive(base uint64, label string) uint64 {
	key := make([]byte, 8)
	binary.LittleEndian.PutUint64(key, base)
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(label))
	return binary.LittleEndian.Uint64(m.Sum(nil)[:8])
}

// RunSeed is the textual seed of a process run. Every game played in the run draws from
// a labelled stream of it, so a run can be replayed from its seed text alone.
type RunSeed struct {
	Text string
	root uint64
}

// NewRunSeed creates a RunSeed from seed text. Empty text is rejected.
func NewRunSeed(seedText string) (RunSeed, error) {
	if seedText == "" {
		return RunSeed{}, fmt.Errorf("seed text must not be empty")
	}
	return RunSeed{Text: seedText, root: SeedFromString(seedText)}, nil
}

// Stream returns a deterministic RNG stream derived from the run's root seed.
func (r RunSeed) Stream(label string) *Stream {
	return newStream(Derive(r.root, label))
}

// GameStream is the stream used by the n-th game of the run.
func (r RunSeed) GameStream(n int) *Stream {
	return r.Stream(fmt.Sprintf("game#%d", n))
}

type splitMix64 struct{ state uint64 }

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Stream is a SplitMix64 generator that can fork labelled child streams.
type Stream struct {
	base uint64
	sm   splitMix64
}

func newStream(seed uint64) *Stream {
	return &Stream{base: seed, sm: splitMix64{state: seed}}
}

// Intn mirrors math/rand.Intn but returns 0 for n <= 0 instead of panicking.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.sm.next() % uint64(n))
}

// Uint64 exposes the raw 64-bit output.
func (s *Stream) Uint64() uint64 { return s.sm.next() }

// Child creates a stable sub-stream derived from this stream's base seed and label.
func (s *Stream) Child(label string) *Stream { return newStream(Derive(s.base, label)) }

// coinFlip is the 50/50 draw shared by the binary actions and events.
func coinFlip(r Rand) bool { return r.Intn(2) == 0 }
