package table

import (
	"testing"

	"lox-core/internal/value"
)

func TestSetGetDelete(t *testing.T) {
	tbl := New()

	if !tbl.Set("a", value.NewNumber(1)) {
		t.Fatalf("expected first Set of 'a' to report a new key")
	}
	if tbl.Set("a", value.NewNumber(2)) {
		t.Fatalf("expected update of existing key to report false")
	}

	got, ok := tbl.Get("a")
	if !ok || got.Num != 2 {
		t.Fatalf("Get(a) = %v, %v; want 2, true", got, ok)
	}

	if _, ok := tbl.Get("missing"); ok {
		t.Fatalf("Get(missing) should report false")
	}

	if !tbl.Delete("a") {
		t.Fatalf("Delete(a) should report true")
	}
	if _, ok := tbl.Get("a"); ok {
		t.Fatalf("Get(a) after delete should report false")
	}
	if tbl.Delete("a") {
		t.Fatalf("second Delete(a) should report false")
	}
}

func TestTombstoneProbeContinuesPastDeletedSlot(t *testing.T) {
	tbl := New()
	// "a", "i" and "q" share the same home slot at capacity 8, so "q" is
	// stored two probes past "a", right after "i".
	tbl.Set("a", value.NewNumber(1))
	tbl.Set("i", value.NewNumber(2))
	tbl.Set("q", value.NewNumber(3))

	tbl.Delete("i")

	got, ok := tbl.Get("q")
	if !ok || got.Num != 3 {
		t.Fatalf("expected 'q' to survive deletion of a colliding predecessor, got %v ok=%v", got, ok)
	}
}

func TestResizeGrowsAndPreservesEntries(t *testing.T) {
	tbl := New()
	const n = 100
	for i := 0; i < n; i++ {
		key := string(rune('a' + i%26))
		key = key + string(rune('0'+i/26))
		tbl.Set(key, value.NewNumber(float64(i)))
	}
	for i := 0; i < n; i++ {
		key := string(rune('a' + i%26))
		key = key + string(rune('0'+i/26))
		got, ok := tbl.Get(key)
		if !ok || got.Num != float64(i) {
			t.Fatalf("key %q: got %v ok=%v, want %d", key, got, ok, i)
		}
	}
}
