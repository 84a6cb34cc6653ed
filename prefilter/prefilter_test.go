package prefilter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lits(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

// leftmostStart is the reference answer: the smallest start >= from of any
// literal occurrence, or -1.
func leftmostStart(haystack []byte, from int, literals [][]byte) int {
	best := -1
	if from > len(haystack) {
		return best
	}
	for _, lit := range literals {
		idx := bytes.Index(haystack[from:], lit)
		if idx >= 0 && (best < 0 || from+idx < best) {
			best = from + idx
		}
	}
	return best
}

func TestNewErrors(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoLiterals)

	_, err = New(lits("ab", ""))
	assert.ErrorIs(t, err, ErrEmptyLiteral)
	assert.Contains(t, err.Error(), "literal 1")
}

func TestNewSelectsStrategy(t *testing.T) {
	tests := []struct {
		name      string
		literals  []string
		wantType  any
		wantCount int
	}{
		{"single byte", []string{"a"}, &memchr{}, 1},
		{"single literal", []string{"needle"}, &memmem{}, 1},
		{"duplicates merged", []string{"ab", "ab"}, &memmem{}, 1},
		{"several literals", []string{"ab", "cd", "e"}, &ahoCorasick{}, 3},
		{"duplicates among several", []string{"ab", "cd", "ab"}, &ahoCorasick{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf, err := New(lits(tt.literals...))
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, pf)
			assert.Equal(t, tt.wantCount, pf.LiteralCount())
		})
	}
}

func TestNewCopiesLiterals(t *testing.T) {
	lit := []byte("ab")
	pf, err := New([][]byte{lit})
	require.NoError(t, err)
	lit[0] = 'x'
	assert.Equal(t, 0, pf.Find([]byte("ab"), 0))
}

func TestFindExact(t *testing.T) {
	tests := []struct {
		name     string
		literal  string
		haystack string
		start    int
		want     int
	}{
		{"byte found", "b", "aab", 0, 2},
		{"byte from start", "a", "aab", 1, 1},
		{"byte missing", "z", "aab", 0, -1},
		{"substring", "ab", "xxaby", 0, 2},
		{"substring after start", "ab", "abab", 1, 2},
		{"substring missing", "ab", "ba", 0, -1},
		{"start at end", "ab", "ab", 2, -1},
		{"start past end", "ab", "ab", 5, -1},
		{"negative start", "ab", "ab", -1, -1},
		{"empty haystack", "a", "", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf, err := New(lits(tt.literal))
			require.NoError(t, err)
			assert.Equal(t, tt.want, pf.Find([]byte(tt.haystack), tt.start))
		})
	}
}

func TestAhoCorasickNeverSkipsAnOccurrence(t *testing.T) {
	literalSets := [][]string{
		{"a", "ab"},
		{"abcd", "bc"},
		{"he", "she", "his", "hers"},
		{"xyz", "y", "zz"},
	}
	haystacks := []string{
		"",
		"xab",
		"abcd",
		"ushers",
		"zzzyxyzz",
		"nothing to see",
		"bcabcdab",
	}

	for _, set := range literalSets {
		literals := lits(set...)
		pf, err := New(literals)
		require.NoError(t, err)
		require.IsType(t, &ahoCorasick{}, pf)

		for _, h := range haystacks {
			haystack := []byte(h)
			for start := 0; start <= len(haystack); start++ {
				want := leftmostStart(haystack, start, literals)
				got := pf.Find(haystack, start)
				if want < 0 {
					assert.Equal(t, -1, got, "literals %q haystack %q start %d", set, h, start)
					continue
				}
				assert.GreaterOrEqual(t, got, start, "literals %q haystack %q start %d", set, h, start)
				assert.LessOrEqual(t, got, want, "literals %q haystack %q start %d", set, h, start)
			}
			assert.Equal(t, leftmostStart(haystack, 0, literals) >= 0, pf.IsMatch(haystack), "IsMatch(%q)", h)
		}
	}
}

func TestIsMatch(t *testing.T) {
	tests := []struct {
		name     string
		literals []string
		haystack string
		want     bool
	}{
		{"byte hit", []string{"q"}, "aqa", true},
		{"byte miss", []string{"q"}, "aaa", false},
		{"substring hit", []string{"ab"}, "xxab", true},
		{"substring miss", []string{"ab"}, "a b", false},
		{"several hit", []string{"ab", "cd"}, "xcdx", true},
		{"several miss", []string{"ab", "cd"}, "acbd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf, err := New(lits(tt.literals...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, pf.IsMatch([]byte(tt.haystack)))
		})
	}
}

func BenchmarkAhoCorasickFind(b *testing.B) {
	pf, err := New(lits("needle", "haystack", "pin"))
	if err != nil {
		b.Fatal(err)
	}
	haystack := bytes.Repeat([]byte("straw "), 1024)
	haystack = append(haystack, "needle"...)
	b.SetBytes(int64(len(haystack)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pf.Find(haystack, 0)
	}
}
