package script

// The stop-word sets and intent keywords below are configuration data, not
// algorithm. They are defined once here so a deployment targeting another
// language only has to supply a different Profile.

func latinProfile() Profile {
	return Profile{
		Script:        Latin,
		MinKeywordLen: 4,
		StopWords: wordSet(
			"this", "that", "with", "from", "have", "been", "were", "will",
			"what", "when", "where", "which", "their", "there", "about",
			"into", "over", "under", "after", "before", "between", "through",
			"such", "than", "then", "them", "they", "these", "those", "also",
			"each", "other", "some", "more", "most", "very", "only",
		),
		IntentKeywords: []string{
			"report", "draft", "write up", "writeup", "summarize",
			"summarise", "document", "compile",
		},
		FallbackSections: []string{"Overview", "Key Points", "Details"},
		TitleSuffix:      " Report",
		GenericTitle:     "Generated Report",
		EmptySectionText: "Insufficient information was available in the reference material for this section.",
	}
}

func cjkProfile() Profile {
	return Profile{
		Script:        CJK,
		MinKeywordLen: 2,
		StopWords: wordSet(
			"こと", "もの", "ため", "これ", "それ", "あれ", "どの",
			"について", "による", "および", "また", "など", "です", "ます",
			"する", "ある", "いる", "なる", "れる", "られ",
		),
		IntentKeywords: []string{
			"レポート", "報告", "報告書", "まとめ", "まとめて", "作成",
			"文書化", "草案", "ドラフト",
		},
		FallbackSections: []string{"概要", "主なポイント", "詳細"},
		TitleSuffix:      "に関するレポート",
		GenericTitle:     "生成レポート",
		EmptySectionText: "このセクションに関する十分な情報が参考資料にありませんでした。",
	}
}

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
