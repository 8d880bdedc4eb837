package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	domain "github.com/donaldgifford/offer-tracker/pkg/types"
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

func printTickReport(w io.Writer, r *domain.TickReport) error {
	tw := newTabWriter(w)
	tw.writef("Outcome:\t%s\n", r.Outcome)
	tw.writef("Product:\t%s\n", r.ProductID)
	if r.Name != "" {
		tw.writef("Name:\t%s\n", r.Name)
	}
	tw.writef("Found:\t%v\n", r.Found)
	tw.writef("On offer:\t%v\n", r.Qualifies)
	if r.PromoPrice != "" {
		tw.writef("Promo price:\t%s\n", r.PromoPrice)
	}
	if r.BasePrice != "" {
		tw.writef("Base price:\t%s\n", r.BasePrice)
	}
	tw.writef("Matching sizes:\t%s\n", orDash(strings.Join(r.MatchingSizes, ", ")))
	tw.writef("Pages:\t%d (%d items, stopped: %s)\n", r.PagesFetched, r.ItemsSeen, orDash(r.StoppedAt))
	if !r.StartedAt.IsZero() {
		tw.writef("Started:\t%s\n", r.StartedAt.Format("2006-01-02 15:04:05"))
	}
	tw.writef("Duration:\t%dms\n", r.DurationMs)
	if r.Error != "" {
		tw.writef("Error:\t%s\n", r.Error)
	}
	return tw.finish()
}

func printStateView(w io.Writer, v *domain.StateView) error {
	tw := newTabWriter(w)
	tw.writef("Product:\t%s\n", v.ProductID)
	tw.writef("Sizes:\t%s\n", orDash(strings.Join(v.Sizes, ", ")))
	tw.writef("Notified:\t%v\n", v.Current)
	tw.writef("Record:\t%s\n", orDash(strings.Join(v.Notified, ", ")))
	if err := tw.finish(); err != nil {
		return err
	}
	if v.LastTick == nil {
		_, err := fmt.Fprintln(w, "\nNo tick has run yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "\nLast tick:"); err != nil {
		return err
	}
	return printTickReport(w, v.LastTick)
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
