package object

import (
	"crypto/rand"
	"testing"
)

func randomPayloads(b *testing.B, n, size int) [][]byte {
	b.Helper()
	payloads := make([][]byte, n)
	for i := range payloads {
		buf := make([]byte, size)
		if _, err := rand.Read(buf); err != nil {
			b.Fatalf("rand.Read: %v", err)
		}
		payloads[i] = buf
	}
	return payloads
}

// BenchmarkStorePutSmall benchmarks writing a 100-byte blob to the store.
func BenchmarkStorePutSmall(b *testing.B) {
	s := NewStore(b.TempDir())
	// Distinct payloads so each put misses the Has fast path.
	payloads := randomPayloads(b, b.N, 100)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Put(payloads[i]); err != nil {
			b.Fatalf("Put: %v", err)
		}
	}
}

// BenchmarkStorePutLarge benchmarks writing a 100KB blob to the store.
func BenchmarkStorePutLarge(b *testing.B) {
	s := NewStore(b.TempDir())
	payloads := randomPayloads(b, b.N, 100*1024)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Put(payloads[i]); err != nil {
			b.Fatalf("Put: %v", err)
		}
	}
}

// BenchmarkStorePutDuplicate measures the dedup fast path.
func BenchmarkStorePutDuplicate(b *testing.B) {
	s := NewStore(b.TempDir())
	data := randomPayloads(b, 1, 4096)[0]
	if _, err := s.Put(data); err != nil {
		b.Fatalf("Put: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Put(data); err != nil {
			b.Fatalf("Put: %v", err)
		}
	}
}

// BenchmarkStoreGet compares cached and uncached reads of one blob.
func BenchmarkStoreGet(b *testing.B) {
	for _, tc := range []struct {
		name  string
		cache int
	}{
		{"cached", DefaultCacheSize},
		{"uncached", 0},
	} {
		b.Run(tc.name, func(b *testing.B) {
			s := NewStore(b.TempDir(), WithCacheSize(tc.cache))
			h, err := s.Put(randomPayloads(b, 1, 4096)[0])
			if err != nil {
				b.Fatalf("Put: %v", err)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := s.Get(h); err != nil {
					b.Fatalf("Get: %v", err)
				}
			}
		})
	}
}
