package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"datalist/internal/controller"
	"datalist/internal/domain"
)

const defaultLimit = 10

// listOutput is the JSON shape of one page.
type listOutput struct {
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalCount int             `json:"total_count"`
	PageCount  int             `json:"page_count"`
	Rows       []domain.Record `json:"rows"`
}

// queryFlags binds the query parameters shared by list and browse.
type queryFlags struct {
	page        int
	limit       int
	sort        string
	sortOrder   string
	filter      string
	filterType  string
	filterValue string
}

func (f *queryFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.page, "page", 0, "Zero-based page number")
	fs.IntVar(&f.limit, "limit", defaultLimit, "Records per page")
	fs.StringVar(&f.sort, "sort", "", "Field to sort by")
	fs.StringVar(&f.sortOrder, "sort-order", "", "Sort direction (ascending, descending)")
	fs.StringVar(&f.filter, "filter", "", "Field to filter on")
	fs.StringVar(&f.filterType, "filter-type", "", "Comparison (equals, contains, more_than, less_than)")
	fs.StringVar(&f.filterValue, "filter-value", "", "Value to compare against")
}

// query builds the initial query. A profile limit applies unless --limit
// was given.
func (f *queryFlags) query(fs *pflag.FlagSet, opts *rootOptions) (domain.Query, error) {
	q := domain.Query{
		Page:        f.page,
		Limit:       f.limit,
		Sort:        f.sort,
		SortOrder:   domain.SortOrder(f.sortOrder),
		Filter:      f.filter,
		FilterType:  domain.FilterType(f.filterType),
		FilterValue: f.filterValue,
	}
	if !fs.Changed("limit") && opts.limit > 0 {
		q.Limit = opts.limit
	}
	if q.Sort != "" && q.SortOrder == "" {
		q.SortOrder = domain.SortAscending
	}
	return q, q.Validate()
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of records",
		Example: `  datalist list --limit 20
  datalist list --sort quantity --sort-order descending
  datalist list --filter name --filter-type contains --filter-value ar -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := flags.query(cmd.Flags(), opts)
			if err != nil {
				return err
			}

			st, err := fetchOnce(cmd.Context(), opts.client, q, opts.logger)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return PrintJSON(cmd.OutOrStdout(), newListOutput(st))
			}

			cols, err := opts.client.Columns(cmd.Context())
			if err != nil {
				opts.logger.Debug("column definitions unavailable", "error", err)
				cols = columnsFromRows(st.Rows)
			}
			if err := printRecords(cmd.OutOrStdout(), cols, st.Rows, outputWidth(cmd)); err != nil {
				return err
			}
			printFooter(cmd.OutOrStdout(), st.Query, st.TotalCount, st.PageCount)
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func newListOutput(st controller.State) listOutput {
	rows := st.Rows
	if rows == nil {
		rows = []domain.Record{}
	}
	return listOutput{
		Page:       st.Query.Page,
		Limit:      st.Query.Limit,
		TotalCount: st.TotalCount,
		PageCount:  st.PageCount,
		Rows:       rows,
	}
}

// columnsFromRows derives plain columns when the server does not describe
// them.
func columnsFromRows(rows []domain.Record) []domain.ColumnDef {
	if len(rows) == 0 {
		return nil
	}
	ds := domain.NewDataset(nil, rows[:1])
	cols := make([]domain.ColumnDef, 0, len(ds.Fields()))
	for _, f := range ds.Fields() {
		cols = append(cols, domain.ColumnDef{ID: f, Title: f})
	}
	return cols
}
