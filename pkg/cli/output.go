package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"datalist/internal/domain"
)

const defaultTerminalWidth = 120

// getOutputFormat returns the effective output format from the root command's persistent flags.
func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// printRecords renders rows as an aligned table. Cells are truncated so a
// row fits in width.
func printRecords(w io.Writer, cols []domain.ColumnDef, rows []domain.Record, width int) error {
	if len(cols) == 0 {
		_, err := fmt.Fprintln(w, "(no columns)")
		return err
	}

	// Two spaces of padding between columns.
	cellWidth := (width - 2*(len(cols)-1)) / len(cols)
	if cellWidth < 4 {
		cellWidth = 4
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = truncate(strings.ToUpper(c.Title), cellWidth)
	}
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))

	cells := make([]string, len(cols))
	for _, r := range rows {
		for i, c := range cols {
			cells[i] = truncate(r.Get(c.ID).ToString(), cellWidth)
		}
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// printFooter writes the pagination summary below a table.
func printFooter(w io.Writer, q domain.Query, total, pages int) {
	if pages == 0 {
		_, _ = fmt.Fprintf(w, "\nno matching records\n")
		return
	}
	_, _ = fmt.Fprintf(w, "\npage %d of %d (%d records)\n", q.Page+1, pages, total)
}
