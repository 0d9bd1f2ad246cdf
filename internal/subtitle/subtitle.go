package subtitle

// Segment is a span of recognized speech. Start and End are in seconds.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Block is one numbered cue of a subtitle file.
type Block struct {
	Index int
	Start float64
	End   float64
	Lines []string
}

// TranscriptLine is one entry of a plain-text transcript.
type TranscriptLine struct {
	Start float64
	Text  string
}

// represents complete subtitle track plus its plain-text transcript
type Subtitle struct {
	Blocks     []Block
	Transcript []TranscriptLine
}

// represents supported output formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatTXT Format = "txt"
	FormatVTT Format = "vtt"
)

// interface for writing subtitles to files
type Writer interface {
	Write(subtitle *Subtitle, path string) error
}
