package subtitle

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mgpai22/zhsub/internal/formatter"
)

func TestParseBlocks(t *testing.T) {
	content := "\ufeff1\r\n00:00:01,000 --> 00:00:04,000\r\n你好\r\n\r\n" +
		"2\n00:00:05,500 --> 00:00:08,200\n第一行\n第二行\n\n" +
		"just a note\n\n"

	blocks := ParseBlocks(content)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	if blocks[0].Index != "1" || blocks[0].Timing != "00:00:01,000 --> 00:00:04,000" {
		t.Errorf("block 0 header = %q / %q", blocks[0].Index, blocks[0].Timing)
	}
	if !reflect.DeepEqual(blocks[1].Text, []string{"第一行", "第二行"}) {
		t.Errorf("block 1 text = %q", blocks[1].Text)
	}
	if !blocks[2].Malformed() {
		t.Error("block 2 should be malformed")
	}
	if blocks[2].String() != "just a note" {
		t.Errorf("malformed block = %q", blocks[2].String())
	}
}

func TestParseBlocksEmpty(t *testing.T) {
	if blocks := ParseBlocks(" \n\n "); blocks != nil {
		t.Errorf("expected nil, got %v", blocks)
	}
}

func TestReformat(t *testing.T) {
	content := "1\n00:00:00,000 --> 00:00:05,000\n然後我覺得說這個東西要改進\n\n" +
		"2\n00:00:05,000 --> 00:00:09,000\n這個模型他很聰明\n她也是\n\n" +
		"3\n00:00:09,000\n\n" +
		"4\n00:00:10,000 --> 00:00:20,000\n" + strings.Repeat("字", 40) + "\n"

	got, stats := Reformat(content, formatter.New(18))

	want := "1\n00:00:00,000 --> 00:00:05,000\n我覺得這個產品要改進\n\n" +
		"2\n00:00:05,000 --> 00:00:09,000\n這個模型它很聰明它也是\n\n" +
		"3\n00:00:09,000\n\n" +
		"4\n00:00:10,000 --> 00:00:20,000\n" +
		strings.Repeat("字", 18) + "\n" + strings.Repeat("字", 18) + "\n" + strings.Repeat("字", 4)

	if got != want {
		t.Errorf("Reformat() =\n%s\nwant\n%s", got, want)
	}
	if stats.Blocks != 4 || stats.Rewritten != 3 || stats.Skipped != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestReformatEmptiedBlockKeepsHeader(t *testing.T) {
	got, _ := Reformat("1\n00:00:00,000 --> 00:00:01,000\n然後\n", formatter.New(0))
	if want := "1\n00:00:00,000 --> 00:00:01,000\n"; got != want {
		t.Errorf("Reformat() = %q, want %q", got, want)
	}
}

func TestDecode(t *testing.T) {
	blocks, err := Decode(ParseBlocks("1\n00:00:01,000 --> 00:00:04,000\nHello\n\n2\n00:01:05,400 --> 00:01:06,000\nA\nB\n"))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[1].Index != 2 || blocks[1].Start != 65.4 || blocks[1].End != 66 {
		t.Errorf("block 1 = %+v", blocks[1])
	}
	if !reflect.DeepEqual(blocks[1].Lines, []string{"A", "B"}) {
		t.Errorf("block 1 lines = %q", blocks[1].Lines)
	}
}

func TestDecodeErrors(t *testing.T) {
	inputs := []string{
		"x\n00:00:01,000 --> 00:00:04,000\nHello",
		"1\nnot a timing\nHello",
		"1\n00:00:01,000",
	}
	for _, in := range inputs {
		if _, err := Decode(ParseBlocks(in)); err == nil {
			t.Errorf("Decode(%q) expected error", in)
		}
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.srt")
	content := "1\n00:00:01,000 --> 00:00:04,000\n你好\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	blocks, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Lines[0] != "你好" {
		t.Errorf("blocks = %+v", blocks)
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.srt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReformatFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "talk_cht.srt")
	content := "1\r\n00:00:00,000 --> 00:00:02,000\r\n然後大家好嗎?\r\n"
	if err := os.WriteFile(in, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out := FormattedPath(in)
	if filepath.Base(out) != "talk_cht_formatted.srt" {
		t.Fatalf("FormattedPath = %q", out)
	}
	stats, err := ReformatFile(in, out, formatter.New(0))
	if err != nil {
		t.Fatalf("ReformatFile returned error: %v", err)
	}
	if stats.Rewritten != 1 {
		t.Errorf("stats = %+v", stats)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := "1\n00:00:00,000 --> 00:00:02,000\n你好嗎\n"; string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}

	if _, err := ReformatFile(filepath.Join(dir, "missing.srt"), out, nil); err == nil {
		t.Error("expected error for missing input")
	}
}
