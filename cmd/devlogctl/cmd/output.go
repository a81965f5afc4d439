package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/donaldgifford/devlog/internal/jobs"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printPostsTable(w io.Writer, posts []domain.Post) error {
	tw := newTabWriter(w)
	tw.writef("ID\tCATEGORY\tCREATED\tTITLE\n")
	for i := range posts {
		tw.writef("%s\t%s\t%s\t%s\n",
			posts[i].ID,
			posts[i].Category,
			posts[i].CreatedAt.Format("2006-01-02 15:04"),
			truncate(posts[i].Title, 50),
		)
	}
	return tw.finish()
}

func printPostDetail(w io.Writer, p *domain.Post) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", p.ID)
	tw.writef("Title:\t%s\n", p.Title)
	tw.writef("Category:\t%s\n", p.Category)
	tw.writef("Author:\t%s\n", p.AuthorID)
	tw.writef("Created:\t%s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	if thumb := p.Thumbnail(); thumb != "" {
		tw.writef("Thumbnail:\t%s\n", thumb)
	}
	if err := tw.finish(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", p.Content)
	return err
}

func printCategoriesTable(w io.Writer, cats []domain.Category) error {
	tw := newTabWriter(w)
	tw.writef("POSITION\tNAME\n")
	for _, c := range cats {
		tw.writef("%d\t%s\n", c.Position, c.Name)
	}
	return tw.finish()
}

func printJobsTable(w io.Writer, list []jobs.Status) error {
	tw := newTabWriter(w)
	tw.writef("NAME\tSCHEDULE\tLAST RUN\tNEXT RUN\n")
	for _, j := range list {
		tw.writef("%s\t%s\t%s\t%s\n", j.Name, j.Schedule, formatRun(j.Prev), formatRun(j.Next))
	}
	return tw.finish()
}

// formatRun renders a job run time, or "never" for the zero time.
func formatRun(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to maxLen runes.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
