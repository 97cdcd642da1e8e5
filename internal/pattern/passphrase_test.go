package pattern

import (
	"os"
	"testing"
)

func emptyCustomCharsets() [4]*string {
	return [4]*string{}
}

func TestParsePassphraseMask(t *testing.T) {
	p, err := ParsePassphrase([]string{"pass?l?l?l?d"}, emptyCustomCharsets())
	if err != nil {
		t.Fatal(err)
	}
	if p.AttackMode != 3 {
		t.Fatalf("AttackMode = %d, want 3", p.AttackMode)
	}
	if p.Total().Int64() != 26*26*26*10 {
		t.Fatalf("Total() = %s", p.Total())
	}
	if p.Begin() != "passaaa0" {
		t.Fatalf("Begin() = %q, want passaaa0", p.Begin())
	}
	if p.End() != "passzzz9" {
		t.Fatalf("End() = %q, want passzzz9", p.End())
	}
}

func TestParsePassphraseMaskEscapes(t *testing.T) {
	p, err := ParsePassphrase([]string{"a?l//?d ??"}, emptyCustomCharsets())
	if err != nil {
		t.Fatal(err)
	}
	if p.Total().Int64() != 26*10 {
		t.Fatalf("Total() = %s, want 260", p.Total())
	}
	if p.Begin() != "aa/0 ?" {
		t.Fatalf("Begin() = %q, want %q", p.Begin(), "aa/0 ?")
	}
	if p.End() != "az/9 ?" {
		t.Fatalf("End() = %q, want %q", p.End(), "az/9 ?")
	}
}

func TestParsePassphraseDictLiteral(t *testing.T) {
	p, err := ParsePassphrase([]string{"a,b,c"}, emptyCustomCharsets())
	if err != nil {
		t.Fatal(err)
	}
	if p.AttackMode != 0 {
		t.Fatalf("AttackMode = %d, want 0", p.AttackMode)
	}
	if p.Total().Int64() != 1 {
		t.Fatalf("Total() = %s, want 1", p.Total())
	}
	if p.Begin() != "abc" {
		t.Fatalf("Begin() = %q, want abc", p.Begin())
	}
}

func TestParsePassphraseDictEmptySegmentIsLiteralComma(t *testing.T) {
	p, err := ParsePassphrase([]string{"a,,b"}, emptyCustomCharsets())
	if err != nil {
		t.Fatal(err)
	}
	if p.Begin() != "a,b" {
		t.Fatalf("Begin() = %q, want %q", p.Begin(), "a,b")
	}
}

func TestParsePassphraseDictFile(t *testing.T) {
	rel := "dict_test_tmp.txt"
	if err := os.WriteFile(rel, []byte("the\npoison\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(rel) })

	arg := "a,./" + rel + ",b"
	p, err := ParsePassphrase([]string{arg}, emptyCustomCharsets())
	if err != nil {
		t.Fatal(err)
	}
	if p.Total().Int64() != 2 {
		t.Fatalf("Total() = %s, want 2", p.Total())
	}
}

func TestParsePassphraseDictDict(t *testing.T) {
	p, err := ParsePassphrase([]string{"a,b", "c,d"}, emptyCustomCharsets())
	if err != nil {
		t.Fatal(err)
	}
	if p.AttackMode != 1 {
		t.Fatalf("AttackMode = %d, want 1", p.AttackMode)
	}
	// Each arg's comma segments concatenate into one passphrase ("ab",
	// "cd"), so dict x dict is 1 x 1.
	if p.Total().Int64() != 1 {
		t.Fatalf("Total() = %s, want 1", p.Total())
	}
}

func TestParsePassphraseDictMask(t *testing.T) {
	p, err := ParsePassphrase([]string{"a,b", "?d"}, emptyCustomCharsets())
	if err != nil {
		t.Fatal(err)
	}
	if p.AttackMode != 6 {
		t.Fatalf("AttackMode = %d, want 6", p.AttackMode)
	}
}

func TestParsePassphraseMaskDict(t *testing.T) {
	p, err := ParsePassphrase([]string{"?d", "a,b"}, emptyCustomCharsets())
	if err != nil {
		t.Fatal(err)
	}
	if p.AttackMode != 7 {
		t.Fatalf("AttackMode = %d, want 7", p.AttackMode)
	}
}

func TestParsePassphraseRejectsTwoMasks(t *testing.T) {
	if _, err := ParsePassphrase([]string{"?l", "?l"}, emptyCustomCharsets()); err == nil {
		t.Fatal("expected error: mask+mask has no valid attack mode")
	}
}

func TestParsePassphraseRejectsTooManyArgs(t *testing.T) {
	if _, err := ParsePassphrase([]string{"a", "b", "c"}, emptyCustomCharsets()); err == nil {
		t.Fatal("expected error: at most 2 args")
	}
}

func TestParsePassphraseCustomCharset(t *testing.T) {
	custom := "xyz"
	charsets := emptyCustomCharsets()
	charsets[0] = &custom

	p, err := ParsePassphrase([]string{"?1?1"}, charsets)
	if err != nil {
		t.Fatal(err)
	}
	if p.Total().Int64() != 9 {
		t.Fatalf("Total() = %s, want 9", p.Total())
	}
	if p.Begin() != "xx" {
		t.Fatalf("Begin() = %q, want xx", p.Begin())
	}
}

func TestAddBinaryCharsetsFillsFreeSlots(t *testing.T) {
	attack, err := ParsePassphrase([]string{"?l?l"}, emptyCustomCharsets())
	if err != nil {
		t.Fatal(err)
	}

	rewritten, err := attack.AddBinaryCharsets(2, 7)
	if err != nil {
		t.Fatal(err)
	}
	if rewritten == nil {
		t.Fatal("expected binary charsets to be added, got nil")
	}
	m, ok := rewritten.Left.(*Mask)
	if !ok {
		t.Fatalf("Left is %T, want *Mask", rewritten.Left)
	}
	if m.Arg != "?1?2?3?l?l" {
		t.Fatalf("Arg = %q, want ?1?2?3?l?l", m.Arg)
	}
}

func TestAddBinaryCharsetsNoFreeSlots(t *testing.T) {
	c1, c2, c3, c4 := "a", "b", "c", "d"
	charsets := [4]*string{&c1, &c2, &c3, &c4}
	attack, err := ParsePassphrase([]string{"?l"}, charsets)
	if err != nil {
		t.Fatal(err)
	}

	rewritten, err := attack.AddBinaryCharsets(1, 7)
	if err != nil {
		t.Fatal(err)
	}
	if rewritten != nil {
		t.Fatal("expected nil: no free custom-charset slots")
	}
}

func TestParsePassphraseUnknownWildcard(t *testing.T) {
	if _, err := ParsePassphrase([]string{"?z"}, emptyCustomCharsets()); err == nil {
		t.Fatal("expected error for unknown wildcard flag")
	}
}

func TestParsePassphraseMaskEndsInQuestionMark(t *testing.T) {
	if _, err := ParsePassphrase([]string{"abc?"}, emptyCustomCharsets()); err == nil {
		t.Fatal("expected error: trailing unescaped ?")
	}
}
