package transcribe

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/mgpai22/zhsub/internal/audio"
	"github.com/mgpai22/zhsub/internal/subtitle"
)

// fakeTranscriber returns one segment per chunk path, or an error for paths
// listed in fail.
type fakeTranscriber struct {
	fail  map[string]bool
	calls atomic.Int32
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path string) (*Result, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.fail[path] {
		return nil, errors.New("boom")
	}
	return &Result{Segments: []subtitle.Segment{
		{Start: 0.5, End: 2, Text: path + "-a"},
		{Start: 2, End: 4, Text: path + "-b"},
	}}, nil
}

func testChunks(n int) []audio.ChunkInfo {
	chunks := make([]audio.ChunkInfo, n)
	for i := range chunks {
		chunks[i] = audio.ChunkInfo{
			Path:  fmt.Sprintf("c%d", i),
			Index: i,
			Start: float64(i) * 60,
			End:   float64(i+1) * 60,
		}
	}
	return chunks
}

func TestTranscribeWithChunksOrdersAndOffsets(t *testing.T) {
	result, err := TranscribeWithChunks(context.Background(), &fakeTranscriber{}, testChunks(5), 3)
	if err != nil {
		t.Fatalf("TranscribeWithChunks returned error: %v", err)
	}
	if len(result.Segments) != 10 {
		t.Fatalf("expected 10 segments, got %d", len(result.Segments))
	}
	for i, seg := range result.Segments {
		chunk := i / 2
		wantText := fmt.Sprintf("c%d-%s", chunk, []string{"a", "b"}[i%2])
		if seg.Text != wantText {
			t.Errorf("segment %d text = %q, want %q", i, seg.Text, wantText)
		}
		wantStart := float64(chunk)*60 + []float64{0.5, 2}[i%2]
		if seg.Start != wantStart {
			t.Errorf("segment %d start = %v, want %v", i, seg.Start, wantStart)
		}
	}
	if result.Duration != 300 {
		t.Errorf("duration = %v, want 300", result.Duration)
	}
}

func TestTranscribeWithChunksFailure(t *testing.T) {
	fake := &fakeTranscriber{fail: map[string]bool{"c1": true}}
	_, err := TranscribeWithChunks(context.Background(), fake, testChunks(4), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "chunk 1 failed: boom" {
		t.Errorf("error = %q", got)
	}
}

func TestTranscribeWithChunksCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := TranscribeWithChunks(ctx, &fakeTranscriber{}, testChunks(3), 2); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestTranscribeWithChunksEmpty(t *testing.T) {
	result, err := TranscribeWithChunks(context.Background(), &fakeTranscriber{}, nil, 0)
	if err != nil || len(result.Segments) != 0 {
		t.Fatalf("unexpected result %+v, %v", result, err)
	}
}

func TestFactory(t *testing.T) {
	ctx := context.Background()
	if _, err := Factory(ctx, Provider("azure"), "", Options{}); err == nil {
		t.Error("expected error for unsupported provider")
	}
	if _, err := Factory(ctx, ProviderOpenAI, "", Options{}); err == nil {
		t.Error("expected error for missing OpenAI key")
	}
	if _, err := Factory(ctx, ProviderGemini, "", Options{}); err == nil {
		t.Error("expected error for missing Gemini key")
	}
	tr, err := Factory(ctx, ProviderOpenAI, "sk-test", Options{})
	if err != nil {
		t.Fatalf("Factory(openai) returned error: %v", err)
	}
	if tr.(*OpenAITranscriber).model != "whisper-1" {
		t.Errorf("default model = %q", tr.(*OpenAITranscriber).model)
	}
}
