package moderation

import (
	"testing"
)

func TestNormalizeStripsSeparatorsAndCase(t *testing.T) {
	cases := map[string]string{
		"Hello World": "helloworld",
		"b.a-d":       "bad",
		"  S P A M  ": "spam",
		"ok123!":      "ok123",
		"":            "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMatcherFindsOverlappingPatterns(t *testing.T) {
	m := NewMatcher([]string{"he", "she", "his", "hers"})

	if got := m.Find("ushers"); got != "she" && got != "he" {
		t.Errorf("Find(ushers) = %q, want she or he", got)
	}
	if m.Match("ahi") {
		t.Error("Match(ahi) should be false, his is not complete")
	}
	if !m.Match("xhisx") {
		t.Error("Match(xhisx) should be true")
	}
}

func TestMatcherNoPatterns(t *testing.T) {
	m := NewMatcher(nil)
	if m.Match("anything") {
		t.Error("empty matcher must never match")
	}
}

func TestKeywordFilterRejectsDisguisedKeyword(t *testing.T) {
	f := NewKeywordFilter([]string{"spam"})

	word, banned := f.Rejects("this is S.P.A.M for sure")
	if !banned {
		t.Fatal("expected disguised keyword to be rejected")
	}
	if word != "spam" {
		t.Errorf("rejected word = %q, want spam", word)
	}

	if _, banned := f.Rejects("a perfectly fine comment"); banned {
		t.Error("clean comment must pass")
	}
}

func TestKeywordFilterUnicode(t *testing.T) {
	f := NewKeywordFilter([]string{"도박"})

	if _, banned := f.Rejects("오늘도 도 박 없이 운동했다"); !banned {
		t.Error("expected spaced unicode keyword to be rejected")
	}
	if _, banned := f.Rejects("오늘도 운동했다"); banned {
		t.Error("clean unicode comment must pass")
	}
}
