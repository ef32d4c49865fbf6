package testfixtures

import (
	"sync"
	"testing"
)

func TestIDGeneratorProducesSequentialIDs(t *testing.T) {
	gen := NewIDGenerator("")
	if last := gen.Last(); last != "" {
		t.Fatalf("Last before Next = %q", last)
	}

	first, second := gen.Next(), gen.Next()
	if first != "cfg-1" || second != "cfg-2" {
		t.Fatalf("unexpected identifiers: %q, %q", first, second)
	}
	if gen.Last() != second {
		t.Fatalf("Last = %q, want %q", gen.Last(), second)
	}
}

func TestIDGeneratorIsSafeForConcurrentUse(t *testing.T) {
	gen := NewIDGenerator("preview")
	next := gen.NextFunc()

	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := next()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != 50 {
		t.Fatalf("expected 50 distinct identifiers, got %d", len(seen))
	}
	if gen.Last() != "preview-50" {
		t.Fatalf("Last = %q", gen.Last())
	}
}
