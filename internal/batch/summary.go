package batch

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Status is the outcome of one file.
type Status string

const (
	StatusSucceeded Status = "ok"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// FileResult describes what happened to one input file.
type FileResult struct {
	Path     string
	Status   Status
	Segments int
	Outputs  []string
	Elapsed  time.Duration
	Err      error
}

// Summary aggregates a batch run.
type Summary struct {
	RunID     string
	Total     int
	Succeeded int
	Canceled  bool
	Results   []FileResult
}

// Line is the one-line tally, e.g. "成功: 2/3".
func (s Summary) Line() string {
	return fmt.Sprintf("成功: %d/%d", s.Succeeded, s.Total)
}

// Err returns ErrCanceled for a cancelled batch, an error naming the
// failure count when some file failed, and nil otherwise.
func (s Summary) Err() error {
	if s.Canceled {
		return ErrCanceled
	}
	if failed := s.Total - s.Succeeded; failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, s.Total)
	}
	return nil
}

// Table renders the per-file results.
func (s Summary) Table() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Status", "Segments", "Elapsed", "Detail"})

	for _, r := range s.Results {
		detail := strings.Join(baseNames(r.Outputs), ", ")
		if r.Err != nil {
			detail = r.Err.Error()
		}
		tw.AppendRow(table.Row{
			filepath.Base(r.Path),
			string(r.Status),
			strconv.Itoa(r.Segments),
			r.Elapsed.Round(time.Second).String(),
			detail,
		})
	}
	tw.AppendFooter(table.Row{"", s.Line(), "", "", ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, WidthMax: 60},
	})
	return tw.Render()
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}
