package util

import (
	"encoding/json"
	"os"
	"path"
	"testing"
)

func TestJsonHash(t *testing.T) {
	a := JsonHash([]float64{1, 2, 3})
	b := JsonHash([]float64{1, 2, 3})
	c := JsonHash([]float64{1, 2, 4})
	if a != b {
		t.Fatal("equal values hash differently")
	}
	if a == c {
		t.Fatal("different values share a hash")
	}
	if len(a) != 64 {
		t.Fatalf("hash length = %d, want 64", len(a))
	}
}

func TestMinInt(t *testing.T) {
	if got := MinInt(3, 7); got != 3 {
		t.Fatalf("MinInt(3,7) = %d", got)
	}
	if got := MinInt(7, 3); got != 3 {
		t.Fatalf("MinInt(7,3) = %d", got)
	}
	if got := MinInt(-2, 2); got != -2 {
		t.Fatalf("MinInt(-2,2) = %d", got)
	}
}

func TestCopyHelpers(t *testing.T) {
	ints := []int{1, 2}
	intsCopy := CopyIntSlice(ints)
	intsCopy[0] = 9
	if ints[0] != 1 {
		t.Fatal("int slice copy aliases the original")
	}

	floats := []float64{1.5}
	floatsCopy := CopyFloatSlice(floats)
	floatsCopy[0] = 9
	if floats[0] != 1.5 {
		t.Fatal("float slice copy aliases the original")
	}

	m := map[int]int{1: 2}
	mCopy := CopyIntIntMap(m)
	mCopy[1] = 9
	if m[1] != 2 {
		t.Fatal("map copy aliases the original")
	}
}

func TestSaveJsonCreatesDirs(t *testing.T) {
	p := path.Join(t.TempDir(), "nested", "out.json")
	if err := SaveJson(p, map[string]int{"a": 1}); err != nil {
		t.Fatalf("SaveJson: %v", err)
	}
	bs, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := make(map[string]int)
	if err := json.Unmarshal(bs, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["a"] != 1 {
		t.Fatalf("round trip = %v", out)
	}
}
