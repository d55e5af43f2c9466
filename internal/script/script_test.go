package script

import (
	"testing"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Script
	}{
		{"english", "Draft a report on the quarterly results", Latin},
		{"japanese", "四半期の結果について報告書をまとめてください", CJK},
		{"korean", "분기 결과에 대한 보고서를 작성해 주세요", CJK},
		{"mixed mostly latin", "Write a report about the 会議", Latin},
		{"mixed mostly cjk", "会議の議事録をまとめる (v2)", CJK},
		{"digits and punctuation only", "1234 !? ---", Latin},
		{"empty", "", Latin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.text); got != tc.want {
				t.Errorf("Detect(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestHasIntent(t *testing.T) {
	latin := ForScript(Latin)
	if !latin.HasIntent("Please DRAFT something for me") {
		t.Error("intent match should be case-insensitive")
	}
	if !latin.HasIntent("write up the meeting notes") {
		t.Error("multi-word intent keyword should match")
	}
	if latin.HasIntent("what is the weather today") {
		t.Error("no intent keyword present")
	}

	cjk := ForScript(CJK)
	if !cjk.HasIntent("この内容で報告書を作って") {
		t.Error("expected cjk intent match")
	}
	if cjk.HasIntent("今日の天気は？") {
		t.Error("no cjk intent keyword present")
	}
}

func TestMatches(t *testing.T) {
	latin := ForScript(Latin)
	if !latin.Matches("Budget Overview") {
		t.Error("latin heading should match latin profile")
	}
	if latin.Matches("概要") {
		t.Error("cjk heading should not match latin profile")
	}
	if latin.Matches("123 ---") {
		t.Error("letterless text matches no script")
	}

	cjk := ForScript(CJK)
	if !cjk.Matches("主なポイント") {
		t.Error("cjk heading should match cjk profile")
	}
	if cjk.Matches("Overview") {
		t.Error("latin heading should not match cjk profile")
	}
}

func TestKeywords_Latin(t *testing.T) {
	p := ForScript(Latin)
	got := p.Keywords("The Budget, Timeline and Risks:")

	want := []string{"budget", "timeline", "risks"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestKeywords_LatinDropsStopAndShortWords(t *testing.T) {
	p := ForScript(Latin)
	if got := p.Keywords("this and that with them"); len(got) != 0 {
		t.Errorf("expected no keywords, got %v", got)
	}
}

func TestKeywords_CJKBigrams(t *testing.T) {
	p := ForScript(CJK)
	got := p.Keywords("新製品概要")

	want := []string{"新製", "製品", "品概", "概要"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bigram %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestKeywords_CJKShortRunKeptWhole(t *testing.T) {
	p := ForScript(CJK)
	got := p.Keywords("予算 (2024) 話")

	// Non-CJK characters break the runs; "予算" survives whole, the single
	// rune "話" falls under the minimum length.
	if len(got) != 1 || got[0] != "予算" {
		t.Fatalf("expected [予算], got %v", got)
	}
}

func TestForScript_DefaultsToLatin(t *testing.T) {
	if p := ForScript(Script("unknown")); p.Script != Latin {
		t.Errorf("unknown script should fall back to latin profile, got %s", p.Script)
	}
}
