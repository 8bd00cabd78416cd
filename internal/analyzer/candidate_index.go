package analyzer

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Defaults for the batch prefilter. With 32 bands of 4 rows a pair becomes a
// candidate with probability 1-(1-s^4)^32, about 0.5 at Jaccard s=0.42.
const (
	DefaultShingleSize = 4
	DefaultLSHBands    = 32
	DefaultLSHRows     = 4
)

// MinHasher computes MinHash signatures for feature sets
type MinHasher struct {
	a []uint64
	b []uint64
}

// NewMinHasher creates a MinHasher with numHashes functions (default 128 if invalid)
func NewMinHasher(numHashes int) *MinHasher {
	if numHashes <= 0 {
		numHashes = DefaultLSHBands * DefaultLSHRows
	}
	// fixed seed: signatures must be comparable across runs
	rng := rand.New(rand.NewSource(0x5eed_1234_cafe_babe))
	m := &MinHasher{a: make([]uint64, numHashes), b: make([]uint64, numHashes)}
	for i := range m.a {
		m.a[i] = rng.Uint64() | 1
		m.b[i] = rng.Uint64()
	}
	return m
}

// NumHashes returns the signature length
func (m *MinHasher) NumHashes() int { return len(m.a) }

// Signature computes the MinHash signature of a feature set. Duplicates are ignored.
func (m *MinHasher) Signature(features []string) []uint64 {
	sig := make([]uint64, len(m.a))
	for i := range sig {
		sig[i] = math.MaxUint64
	}

	seen := make(map[uint64]struct{}, len(features))
	for _, f := range features {
		x := hash64(f)
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		for i := range sig {
			v := m.a[i]*x + m.b[i]
			v ^= v >> 29
			if v < sig[i] {
				sig[i] = v
			}
		}
	}
	return sig
}

// EstimateJaccard estimates Jaccard similarity from the share of agreeing positions
func EstimateJaccard(sig1, sig2 []uint64) float64 {
	n := len(sig1)
	if len(sig2) < n {
		n = len(sig2)
	}
	if n == 0 {
		return 0.0
	}
	match := 0
	for i := 0; i < n; i++ {
		if sig1[i] == sig2[i] {
			match++
		}
	}
	return float64(match) / float64(n)
}

// Shingles returns the k-grams of an ordered token sequence. Sequences
// shorter than k yield one shingle holding the whole sequence.
func Shingles(tokens []string, k int) []string {
	if len(tokens) == 0 {
		return nil
	}
	if k <= 0 {
		k = DefaultShingleSize
	}
	if len(tokens) <= k {
		return []string{strings.Join(tokens, "\x1f")}
	}
	out := make([]string, 0, len(tokens)-k+1)
	for i := 0; i+k <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+k], "\x1f"))
	}
	return out
}

type bucketKey struct {
	band int
	hash uint64
}

// CandidateIndex finds pairs of units whose token shingles are likely to be
// similar, using MinHash signatures split into LSH bands. It is not safe for
// concurrent use.
type CandidateIndex struct {
	bands       int
	rows        int
	shingleSize int
	hasher      *MinHasher
	buckets     map[bucketKey][]int
	signatures  [][]uint64
}

// NewCandidateIndex creates an index with the given band layout; non-positive
// values fall back to the defaults.
func NewCandidateIndex(bands, rows int) *CandidateIndex {
	if bands <= 0 {
		bands = DefaultLSHBands
	}
	if rows <= 0 {
		rows = DefaultLSHRows
	}
	return &CandidateIndex{
		bands:       bands,
		rows:        rows,
		shingleSize: DefaultShingleSize,
		hasher:      NewMinHasher(bands * rows),
		buckets:     make(map[bucketKey][]int),
	}
}

// Threshold is the Jaccard similarity at which a pair has a 50% chance of
// becoming a candidate, approximately (1/b)^(1/r).
func (idx *CandidateIndex) Threshold() float64 {
	return math.Pow(1.0/float64(idx.bands), 1.0/float64(idx.rows))
}

// Add indexes a representation and returns its id, the insertion position
func (idx *CandidateIndex) Add(r *Representation) int {
	id := len(idx.signatures)
	sig := idx.hasher.Signature(Shingles(r.Tokens.Ordered, idx.shingleSize))
	idx.signatures = append(idx.signatures, sig)

	for band := 0; band < idx.bands; band++ {
		key := bucketKey{band: band, hash: bandHash(sig[band*idx.rows : (band+1)*idx.rows])}
		idx.buckets[key] = append(idx.buckets[key], id)
	}
	return id
}

// Len returns the number of indexed units
func (idx *CandidateIndex) Len() int { return len(idx.signatures) }

// Estimate returns the estimated Jaccard similarity of two indexed units
func (idx *CandidateIndex) Estimate(i, j int) float64 {
	return EstimateJaccard(idx.signatures[i], idx.signatures[j])
}

// CandidatePairs returns every pair sharing at least one bucket, as [i, j]
// with i < j, sorted.
func (idx *CandidateIndex) CandidatePairs() [][2]int {
	seen := make(map[[2]int]struct{})
	for _, ids := range idx.buckets {
		for x := 0; x < len(ids); x++ {
			for y := x + 1; y < len(ids); y++ {
				i, j := ids[x], ids[y]
				if i > j {
					i, j = j, i
				}
				seen[[2]int{i, j}] = struct{}{}
			}
		}
	}

	pairs := make([][2]int, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a][0] != pairs[b][0] {
			return pairs[a][0] < pairs[b][0]
		}
		return pairs[a][1] < pairs[b][1]
	})
	return pairs
}

func bandHash(rows []uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range rows {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func hash64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
