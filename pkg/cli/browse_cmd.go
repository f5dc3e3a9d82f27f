package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"datalist/internal/controller"
	"datalist/internal/domain"
)

const browseHelp = `commands:
  n, next                       next page
  p, prev                       previous page
  page <n>                      jump to page n (1-based)
  limit <n>                     records per page
  sort <column>                 sort by column; repeat to flip direction
  filter <column> <type> <val>  filter (equals, contains, more_than, less_than)
  clear                         remove the filter
  help                          show this text
  q, quit                       exit`

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page, sort and filter records interactively",
		Long:  "Reads commands from stdin and prints the current page after each one.\n\n" + browseHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := flags.query(cmd.Flags(), opts)
			if err != nil {
				return err
			}

			var ctrlOpts []controller.Option
			cols, err := opts.client.Columns(cmd.Context())
			if err != nil {
				opts.logger.Debug("column definitions unavailable", "error", err)
				cols = nil
			} else {
				ctrlOpts = append(ctrlOpts, controller.WithColumns(cols))
			}

			s := startSession(cmd.Context(), opts.client, q, opts.logger, ctrlOpts...)
			b := &browser{
				session: s,
				cols:    cols,
				out:     cmd.OutOrStdout(),
				width:   outputWidth(cmd),
			}
			runErr := b.loop(cmd.InOrStdin())
			if err := s.stop(); runErr == nil {
				runErr = err
			}
			return runErr
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

type browser struct {
	*session
	cols  []domain.ColumnDef
	out   io.Writer
	width int
}

func (b *browser) loop(in io.Reader) error {
	if err := b.render(1); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" {
			return nil
		}

		changed, err := b.apply(line)
		if err != nil {
			_, _ = fmt.Fprintf(b.out, "error: %v\n", err)
			continue
		}
		if !changed {
			continue
		}
		if err := b.render(b.ctrl.State().Seq); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// apply runs one command line. It reports whether the query changed.
func (b *browser) apply(line string) (bool, error) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	st := b.ctrl.State()

	switch cmd {
	case "n", "next":
		if !controller.HasNext(st.Query.Page, st.PageCount) {
			return false, fmt.Errorf("already on the last page")
		}
		return true, b.ctrl.SetPage(st.Query.Page + 1)
	case "p", "prev":
		if !controller.HasPrev(st.Query.Page) {
			return false, fmt.Errorf("already on the first page")
		}
		return true, b.ctrl.SetPage(st.Query.Page - 1)
	case "page":
		n, err := intArg(args)
		if err != nil {
			return false, err
		}
		return true, b.ctrl.SetPage(n - 1)
	case "limit":
		n, err := intArg(args)
		if err != nil {
			return false, err
		}
		return true, b.ctrl.SetLimit(n)
	case "sort":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: sort <column>")
		}
		return true, b.ctrl.ToggleSort(args[0])
	case "filter":
		if len(args) < 3 {
			return false, fmt.Errorf("usage: filter <column> <type> <value>")
		}
		value := strings.Join(args[2:], " ")
		return true, b.ctrl.SetFilter(args[0], domain.FilterType(args[1]), value)
	case "clear":
		b.ctrl.ClearFilter()
		return true, nil
	case "h", "help", "?":
		_, _ = fmt.Fprintln(b.out, browseHelp)
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", args[0])
	}
	return n, nil
}

func (b *browser) render(seq uint64) error {
	st, err := b.await(seq)
	if err != nil {
		return err
	}
	if st.Err != nil {
		_, _ = fmt.Fprintf(b.out, "error: %v\n", st.Err)
	}

	cols := b.cols
	if cols == nil {
		cols = columnsFromRows(st.Rows)
	}
	if err := printRecords(b.out, cols, st.Rows, b.width); err != nil {
		return err
	}
	printFooter(b.out, st.Query, st.TotalCount, st.PageCount)
	_, _ = fmt.Fprintln(b.out, pageBar(st.Query.Page, st.PageCount))
	return nil
}

// pageBar draws the pagination buttons, e.g. "< 1 2 [3] 4 5 >".
func pageBar(selected, pages int) string {
	var sb strings.Builder
	if controller.HasPrev(selected) {
		sb.WriteString("<")
	} else {
		sb.WriteString(" ")
	}
	for _, p := range controller.PageWindow(selected, pages) {
		if p == selected {
			fmt.Fprintf(&sb, " [%d]", p+1)
		} else {
			fmt.Fprintf(&sb, " %d", p+1)
		}
	}
	if controller.HasNext(selected, pages) {
		sb.WriteString(" >")
	}
	return sb.String()
}
