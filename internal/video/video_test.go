package video

import (
	"math"
	"testing"
)

func TestParseProbe(t *testing.T) {
	data := []byte(`{
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080, "avg_frame_rate": "30000/1001"},
			{"codec_type": "audio", "codec_name": "aac"},
			{"codec_type": "video", "codec_name": "mjpeg", "width": 300, "height": 300, "avg_frame_rate": "0/0"}
		],
		"format": {"duration": "125.500000"}
	}`)

	info, err := parseProbe(data)
	if err != nil {
		t.Fatalf("parseProbe returned error: %v", err)
	}
	if info.Duration != 125.5 {
		t.Errorf("duration = %v", info.Duration)
	}
	if !info.HasAudio {
		t.Error("expected audio stream to be detected")
	}
	if info.Codec != "h264" || info.Width != 1920 || info.Height != 1080 {
		t.Errorf("unexpected video stream %+v", info)
	}
	if math.Abs(info.FrameRate-29.97) > 0.01 {
		t.Errorf("frame rate = %v", info.FrameRate)
	}
}

func TestParseProbeAudioOnly(t *testing.T) {
	info, err := parseProbe([]byte(`{"streams": [{"codec_type": "audio"}], "format": {}}`))
	if err != nil {
		t.Fatalf("parseProbe returned error: %v", err)
	}
	if !info.HasAudio || info.Codec != "" || info.Duration != 0 {
		t.Errorf("unexpected info %+v", info)
	}

	if _, err := parseProbe([]byte(`{"format": {"duration": "abc"}}`)); err == nil {
		t.Error("expected duration parse error")
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := map[string]float64{
		"25/1": 25,
		"24":   24,
		"0/0":  0,
		"x/1":  0,
		"":     0,
	}
	for in, want := range tests {
		if got := parseFrameRate(in); got != want {
			t.Errorf("parseFrameRate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestExtractArgs(t *testing.T) {
	args := extractArgs(ExtractAudioOptions{Format: "mp3", SampleRate: 44100, Channels: 2, Bitrate: "128k"})
	if args["acodec"] != "libmp3lame" || args["b:a"] != "128k" {
		t.Errorf("unexpected mp3 args %v", args)
	}
	wav := extractArgs(DefaultExtractAudioOptions())
	if wav["acodec"] != "pcm_s16le" {
		t.Errorf("wav codec = %v", wav["acodec"])
	}
	if _, ok := wav["b:a"]; ok {
		t.Error("wav must not carry a bitrate")
	}
}
