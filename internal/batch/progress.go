package batch

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// resolution of the bar per file
const stepsPerFile = 1000

// Progress receives batch progress. fraction is the share of the current
// file already recognized, from segment end time over file duration.
type Progress interface {
	Start(files int)
	File(index int, name string)
	Segment(index int, fraction float64)
	Finish()
}

type nopProgress struct{}

func (nopProgress) Start(int)            {}
func (nopProgress) File(int, string)     {}
func (nopProgress) Segment(int, float64) {}
func (nopProgress) Finish()              {}

// NewProgress returns a terminal progress bar on w, or a no-op when w is not
// a terminal.
func NewProgress(w io.Writer) Progress {
	file, ok := w.(*os.File)
	if !ok {
		return nopProgress{}
	}
	fd := file.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nopProgress{}
	}
	return &barProgress{w: w, now: time.Now}
}

type barProgress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
	now func() time.Time

	files     int
	name      string
	fileStart time.Time
}

func (p *barProgress) Start(files int) {
	p.files = files
	p.bar = progressbar.NewOptions(
		files*stepsPerFile,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionUseANSICodes(true),
	)
}

func (p *barProgress) File(index int, name string) {
	p.name = name
	p.fileStart = p.now()
	p.bar.Describe(fmt.Sprintf("(%d/%d) %s", index+1, p.files, name))
	_ = p.bar.Set(index * stepsPerFile)
}

func (p *barProgress) Segment(index int, fraction float64) {
	fraction = min(max(fraction, 0), 1)
	_ = p.bar.Set(index*stepsPerFile + int(fraction*stepsPerFile))

	elapsed := p.now().Sub(p.fileStart)
	if remaining, ok := estimateRemaining(elapsed, fraction, p.files-index-1); ok {
		p.bar.Describe(fmt.Sprintf("(%d/%d) %s 已用: %s | 預估剩餘: %s",
			index+1, p.files, p.name, elapsed.Round(time.Second), remaining.Round(time.Second)))
	}
}

func (p *barProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// estimateRemaining extrapolates the time left from the current file: the
// rest of this file plus every remaining file at the same pace. No estimate
// is made before 5% of the file is done.
func estimateRemaining(elapsed time.Duration, fraction float64, remainingFiles int) (time.Duration, bool) {
	if fraction <= 0.05 {
		return 0, false
	}
	perFile := time.Duration(float64(elapsed) / fraction)
	return perFile - elapsed + time.Duration(remainingFiles)*perFile, true
}
