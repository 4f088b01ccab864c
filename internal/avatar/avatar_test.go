package avatar

import "testing"

func TestIndexDeterministic(t *testing.T) {
	ids := []string{"", "a", "abc123", "b6c7d9e0-1f2a-4b3c-8d4e-5f6a7b8c9d0e", "SolarDAO"}
	for _, id := range ids {
		first := Index(id)
		for i := 0; i < 10; i++ {
			if got := Index(id); got != first {
				t.Fatalf("Index(%q) unstable: got %d then %d", id, first, got)
			}
		}
	}
}

func TestIndexWithinPalette(t *testing.T) {
	ids := []string{"", "x", "project-1", "project-2", "ocean-cleanup", "ümläut", "0000000000000000"}
	for _, id := range ids {
		idx := Index(id)
		if idx < 0 || idx >= len(Palette) {
			t.Fatalf("Index(%q) = %d, out of range [0, %d)", id, idx, len(Palette))
		}
	}
}

func TestIndexEmptyIdentifier(t *testing.T) {
	if got := Index(""); got != 0 {
		t.Fatalf("Index(\"\") = %d, want 0", got)
	}
	if got := Style(""); got != Palette[0] {
		t.Fatalf("Style(\"\") = %q, want %q", got, Palette[0])
	}
}

func TestIndexKnownValues(t *testing.T) {
	// hash("a") = 97 -> 97 % 9 = 7
	if got := Index("a"); got != 7 {
		t.Fatalf("Index(\"a\") = %d, want 7", got)
	}
	// hash("ab") = 98 + 31*97 = 3105 -> 3105 % 9 = 0
	if got := Index("ab"); got != 0 {
		t.Fatalf("Index(\"ab\") = %d, want 0", got)
	}
}

func TestIndexHashesUTF16CodeUnits(t *testing.T) {
	// U+1F4A1 is the surrogate pair 0xD83D 0xDCA1 in UTF-16, so the hash
	// folds two units: 56481 + 31*55357 = 1772548 -> 1772548 % 9 = 7.
	// Hashing the single rune instead would land on 1.
	if got := Index("\U0001F4A1"); got != 7 {
		t.Fatalf("Index(U+1F4A1) = %d, want 7", got)
	}
}

func TestInitial(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"solarDAO", "S"},
		{"ocean Cleanup", "O"},
		{"  trimmed", "T"},
		{"", "U"},
		{"   ", "U"},
		{"école", "É"},
	}
	for _, tc := range tests {
		if got := Initial(tc.name); got != tc.want {
			t.Fatalf("Initial(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestForBadge(t *testing.T) {
	badge := For("abc123", "Alpha")
	if badge.Style != Style("abc123") {
		t.Fatalf("badge style mismatch: %q", badge.Style)
	}
	if badge.Initial != "A" {
		t.Fatalf("badge initial = %q, want %q", badge.Initial, "A")
	}
}
