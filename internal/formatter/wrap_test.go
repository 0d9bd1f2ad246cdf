package formatter

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestHardWrapper(t *testing.T) {
	tests := []struct {
		name  string
		max   int
		input string
		want  []string
	}{
		{
			name:  "prefers comma past minimum index",
			input: strings.Repeat("一", 12) + "，" + strings.Repeat("二", 27),
			want: []string{
				strings.Repeat("一", 12) + "，",
				strings.Repeat("二", 18),
				strings.Repeat("二", 9),
			},
		},
		{
			name:  "hard cut without break",
			input: strings.Repeat("字", 40),
			want: []string{
				strings.Repeat("字", 18),
				strings.Repeat("字", 18),
				strings.Repeat("字", 4),
			},
		},
		{
			name:  "early break ignored",
			input: "一二三，" + strings.Repeat("四", 20),
			want: []string{
				"一二三，" + strings.Repeat("四", 14),
				strings.Repeat("四", 6),
			},
		},
		{
			name:  "space break keeps the space",
			input: "abcdefgh ijklmnopqrstuvw",
			want:  []string{"abcdefgh ", "ijklmnopqrstuvw"},
		},
		{
			name:  "short text untouched",
			input: "今天天氣很好",
			want:  []string{"今天天氣很好"},
		},
		{
			name:  "exactly at limit",
			input: strings.Repeat("字", 18),
			want:  []string{strings.Repeat("字", 18)},
		},
		{
			name:  "custom limit",
			max:   10,
			input: "今天天氣很好，我們去公園走走吧",
			want:  []string{"今天天氣很好，", "我們去公園走走吧"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := HardWrapper{MaxLen: tt.max}
			got := w.Wrap(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHardWrapperLineLimit(t *testing.T) {
	inputs := []string{
		strings.Repeat("字", 100),
		strings.Repeat("一二三四五六七，", 9),
		strings.Repeat("word ", 30),
		"我覺得 ChatGPT 它可以幫我們寫程式，但要人工檢查",
	}
	w := HardWrapper{MaxLen: 18}
	for _, in := range inputs {
		for _, line := range w.Wrap(in) {
			if n := utf8.RuneCountInString(line); n > 18 {
				t.Errorf("line %q has %d runes, limit 18", line, n)
			}
		}
	}
}

func TestHardWrapperRewrapStable(t *testing.T) {
	w := HardWrapper{MaxLen: 18}
	in := strings.Repeat("一", 12) + "，" + strings.Repeat("二", 27)
	first := w.Wrap(in)
	second := w.Wrap(strings.Join(first, ""))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("rewrap changed lines: %q -> %q", first, second)
	}
}

func TestDelimiterSplitter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "splits on all delimiters",
			input: "今天天氣很好，我們去公園。你要來嗎？好",
			want:  []string{"今天天氣很好", "我們去公園", "你要來嗎", "好"},
		},
		{
			name:  "no delimiter",
			input: "沒有標點",
			want:  []string{"沒有標點"},
		},
		{
			name:  "exclamation is not a delimiter",
			input: "好！真的",
			want:  []string{"好！真的"},
		},
		{
			name:  "only delimiters",
			input: "，。",
			want:  []string{"，。"},
		},
		{
			name:  "fragments trimmed",
			input: " 前後空白 ，後面 ",
			want:  []string{"前後空白", "後面"},
		},
		{
			name:  "no length cap",
			input: strings.Repeat("字", 30),
			want:  []string{strings.Repeat("字", 30)},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DelimiterSplitter{}.Wrap(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDelimiterSplitterKeepsCharacters(t *testing.T) {
	in := "第一句，第二句。第三句？第四句"
	lines := DelimiterSplitter{}.Wrap(in)

	var stripped strings.Builder
	for _, r := range in {
		if !strings.ContainsRune(splitDelimiters, r) {
			stripped.WriteRune(r)
		}
	}
	if got := strings.Join(lines, ""); got != stripped.String() {
		t.Errorf("joined lines = %q, want %q", got, stripped.String())
	}
}

func TestWrappersSatisfyInterface(t *testing.T) {
	var _ LineWrapper = HardWrapper{}
	var _ LineWrapper = DelimiterSplitter{}
}
