package formatter

import "testing"

func TestApplySubstitutions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single entry", "我們能夠做到", "我們能做到"},
		{"pronoun swap", "大家好", "你好"},
		{"laughter", "哈哈哈", "XDD"},
		{"expanding entry", "底層", "底層的邏輯"},
		{"no word boundaries", "防止", "預防止"},
		{"chained entries", "覺得說這個東西", "覺得這個產品"},
		// 想要 runs before 不想要, so the longer entry never matches
		{"shorter entry wins for 不想要", "我不想要去", "我不想去"},
		// 需要 runs before 很需要
		{"shorter entry wins for 很需要", "很需要改進", "很要改進"},
		{"no match", "今天天氣很好", "今天天氣很好"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplySubstitutions(tt.input); got != tt.want {
				t.Errorf("ApplySubstitutions(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRemoveFillers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"leading filler", "然後我們走", "我們走"},
		{"filler after comma", "我們，就是這樣", "我們這樣"},
		{"filler before comma", "欸，你來了", "你來了"},
		{"mid sentence filler kept", "他就是這樣", "他就是這樣"},
		{"prefix removed before comma check", "對吧，好", "，好"},
		{"shorter filler shadows longer one", "那當然好", "當然好"},
		{"no filler", "今天天氣很好", "今天天氣很好"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveFillers(tt.input); got != tt.want {
				t.Errorf("RemoveFillers(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDisambiguatePronouns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"chinese marker", "這個模型他很聰明，她也是", "這個模型它很聰明，它也是"},
		{"lowercase latin marker", "the ai said 他", "the ai said 它"},
		{"mixed case marker", "Gpt 說她知道", "Gpt 說它知道"},
		{"model word", "this model 他", "this model 它"},
		{"no marker", "他是老師", "他是老師"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisambiguatePronouns(tt.input); got != tt.want {
				t.Errorf("DisambiguatePronouns(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInsertSpacing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"latin word inside cjk", "我用iPhone拍照", "我用 iPhone 拍照"},
		{"digit inside cjk", "第3名", "第 3 名"},
		{"alternating", "中1中2", "中 1 中 2"},
		{"cjk only", "中文字幕", "中文字幕"},
		{"latin only", "hello world", "hello world"},
		{"already spaced", "中 A 中", "中 A 中"},
		{"punctuation boundary untouched", "好，OK", "好，OK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InsertSpacing(tt.input); got != tt.want {
				t.Errorf("InsertSpacing(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInsertSpacingIdempotent(t *testing.T) {
	inputs := []string{"我用iPhone拍照", "中1中2", "AI模型", "no cjk here", "純中文"}
	for _, in := range inputs {
		once := InsertSpacing(in)
		if twice := InsertSpacing(once); twice != once {
			t.Errorf("InsertSpacing not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
