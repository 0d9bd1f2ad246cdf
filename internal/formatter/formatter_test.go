package formatter

import (
	"reflect"
	"strings"
	"sync"
	"testing"
)

func TestPolishText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			// 需要 is rewritten before 很需要 can match, and 欸， is removed
			// before ，對吧 is looked for
			name:  "observed table order",
			input: "然後我覺得說這個東西很需要改進欸，對吧",
			want:  []string{"我覺得這個產品很要改進對吧"},
		},
		{
			name:  "filler and substitutions",
			input: "然後我覺得說這個東西要改進",
			want:  []string{"我覺得這個產品要改進"},
		},
		{
			name:  "ai pronouns",
			input: "這個模型他很聰明，她也是",
			want:  []string{"這個模型它很聰明，它也是"},
		},
		{
			name:  "spacing then wrap at space",
			input: "我覺得ChatGPT他可以幫我們寫程式,但是需要人工檢查.",
			want:  []string{"我覺得 ChatGPT ", "它可以幫我們寫程式，但要人工檢查"},
		},
		{
			name:  "trigger and full-width ordinal",
			input: "另外第２個重點是速度",
			want:  []string{"另外，第２個，重點是速度"},
		},
		{
			// the spacer separates ASCII digits first, so the ordinal rule
			// no longer sees 第2個
			name:  "ascii ordinal spaced",
			input: "另外第2個重點是速度",
			want:  []string{"另外，第 2 個重點是速度"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	f := New(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.PolishText(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PolishText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSegmentLines(t *testing.T) {
	f := &Formatter{}
	lines, clean := f.SegmentLines(" 你好,今天天氣很好.我們去公園吧! ")

	wantLines := []string{"你好", "今天天氣很好", "我們去公園吧！"}
	if !reflect.DeepEqual(lines, wantLines) {
		t.Errorf("lines = %q, want %q", lines, wantLines)
	}
	if want := "你好，今天天氣很好。我們去公園吧"; clean != want {
		t.Errorf("clean = %q, want %q", clean, want)
	}
	if got, want := SubtitleText(lines), "你好\n今天天氣很好\n我們去公園吧"; got != want {
		t.Errorf("SubtitleText = %q, want %q", got, want)
	}
}

func TestSegmentLinesNoDelimiter(t *testing.T) {
	lines, clean := New(18).SegmentLines("沒有標點的一句話")
	if len(lines) != 1 || lines[0] != "沒有標點的一句話" {
		t.Errorf("lines = %q, want single line", lines)
	}
	if clean != "沒有標點的一句話" {
		t.Errorf("clean = %q", clean)
	}
}

func TestNewDefaultsLineLength(t *testing.T) {
	if got := New(-1).MaxLineLength; got != DefaultMaxLineLength {
		t.Errorf("New(-1).MaxLineLength = %d, want %d", got, DefaultMaxLineLength)
	}
	if got := New(12).MaxLineLength; got != 12 {
		t.Errorf("New(12).MaxLineLength = %d, want 12", got)
	}
}

func TestFormatterConcurrentUse(t *testing.T) {
	f := New(0)
	input := strings.Repeat("然後這個模型他說,我們需要更多東西.", 3)
	want := f.PolishText(input)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := f.PolishText(input); !reflect.DeepEqual(got, want) {
				t.Errorf("concurrent PolishText = %q, want %q", got, want)
			}
		}()
	}
	wg.Wait()
}
