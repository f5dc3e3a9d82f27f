package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"datalist/internal/controller"
	"datalist/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

var filterTypes = []struct {
	Type  domain.FilterType
	Label string
}{
	{domain.FilterEquals, "equals"},
	{domain.FilterContains, "contains"},
	{domain.FilterMoreThan, "more than"},
	{domain.FilterLessThan, "less than"},
}

func layout(title string, body ...Node) Node {
	return Doctype(HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | datalist")),
			Link(Rel("icon"), Href("data:,")),
			StyleEl(Raw(stylesheet)),
		),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				Group(body),
			),
		),
	))
}

func errorPage(title, message string) Node {
	return layout(title,
		P(Class("error"), Text(message)),
		P(A(Href("/ui"), Text("Back to the first page"))),
	)
}

func tablePage(cols []domain.ColumnDef, q domain.Query, res domain.Result) Node {
	pages := res.PageCount(q.Limit)
	return layout("Records",
		filterForm(cols, q),
		recordTable(cols, q, res.Rows),
		pagination(q, pages),
		P(Class("muted"), Text(summary(q, res.TotalCount, pages))),
	)
}

func summary(q domain.Query, total, pages int) string {
	if total == 0 {
		return "No matching records."
	}
	return fmt.Sprintf("Page %d of %d, %d records.", q.Page+1, pages, total)
}

// hrefFor links to the table view of q.
func hrefFor(q domain.Query) string {
	return "/ui?" + q.Values().Encode()
}

func recordTable(cols []domain.ColumnDef, q domain.Query, rows []domain.Record) Node {
	headers := make([]Node, 0, len(cols))
	for _, c := range cols {
		headers = append(headers, columnHeader(c, q))
	}

	var body Node
	if len(rows) == 0 {
		body = Tr(Td(Attr("colspan", strconv.Itoa(len(cols))), Class("empty"), Text("No records")))
	} else {
		body = Map(rows, func(r domain.Record) Node {
			return Tr(Map(cols, func(c domain.ColumnDef) Node {
				return Td(Text(displayValue(c, r.Get(c.ID))))
			}))
		})
	}

	return Table(
		Class("records"),
		THead(Tr(Group(headers))),
		TBody(body),
	)
}

// columnHeader renders a header cell. Sortable headers link to the toggled
// sort on the first page.
func columnHeader(c domain.ColumnDef, q domain.Query) Node {
	if !c.Sortable {
		return Th(Text(c.Title))
	}

	next := q.WithSortToggled(c.ID)
	next.Page = 0

	indicator := ""
	if q.HasSort() && q.Sort == c.ID {
		indicator = "▲"
		if q.SortOrder == domain.SortDescending {
			indicator = "▼"
		}
	}

	return Th(
		A(Href(hrefFor(next)), Text(c.Title)),
		If(indicator != "", Span(Class("sort-indicator"), Text(indicator))),
	)
}

func filterForm(cols []domain.ColumnDef, q domain.Query) Node {
	fieldOptions := make([]Node, 0, len(cols))
	for _, c := range cols {
		if !c.Filterable {
			continue
		}
		fieldOptions = append(fieldOptions, Option(Value(c.ID), Text(c.Title), If(q.Filter == c.ID, Selected())))
	}
	typeOptions := make([]Node, 0, len(filterTypes))
	for _, ft := range filterTypes {
		typeOptions = append(typeOptions, Option(Value(string(ft.Type)), Text(ft.Label), If(q.FilterType == ft.Type, Selected())))
	}

	return Form(
		Class("filter"),
		Method("get"),
		Action("/ui"),
		Input(Type("hidden"), Name(domain.ParamPage), Value("0")),
		Input(Type("hidden"), Name(domain.ParamLimit), Value(strconv.Itoa(q.Limit))),
		If(q.HasSort(), Group{
			Input(Type("hidden"), Name(domain.ParamSort), Value(q.Sort)),
			Input(Type("hidden"), Name(domain.ParamSortOrder), Value(string(q.SortOrder))),
		}),
		Select(Name(domain.ParamFilter), Group(fieldOptions)),
		Select(Name(domain.ParamFilterType), Group(typeOptions)),
		Input(Type("text"), Name(domain.ParamFilterValue), Value(q.FilterValue), Placeholder("Value")),
		Button(Type("submit"), Text("Filter")),
		If(q.HasFilter(), A(Class("clear"), Href(hrefFor(clearedFilter(q))), Text("Clear"))),
	)
}

func clearedFilter(q domain.Query) domain.Query {
	q = q.WithoutFilter()
	q.Page = 0
	return q
}

func pagination(q domain.Query, pages int) Node {
	at := func(page int) domain.Query {
		next := q
		next.Page = page
		return next
	}

	buttons := []Node{
		pageLink("<", hrefFor(at(q.Page-1)), !controller.HasPrev(q.Page), false),
	}
	for _, p := range controller.PageWindow(q.Page, pages) {
		buttons = append(buttons, pageLink(strconv.Itoa(p+1), hrefFor(at(p)), false, p == q.Page))
	}
	buttons = append(buttons, pageLink(">", hrefFor(at(q.Page+1)), !controller.HasNext(q.Page, pages), false))

	return Nav(Class("pagination"), Group(buttons))
}

func pageLink(label, href string, disabled, active bool) Node {
	classes := []string{"page"}
	if active {
		classes = append(classes, "active")
	}
	if disabled {
		classes = append(classes, "disabled")
		return Span(Class(strings.Join(classes, " ")), Text(label))
	}
	return A(Class(strings.Join(classes, " ")), Href(href), Text(label))
}

// displayValue formats a cell. Epoch-millisecond numbers in a "date" column
// are shown as calendar dates.
func displayValue(c domain.ColumnDef, v domain.Value) string {
	if v.IsUndefined() {
		return ""
	}
	if c.ID == "date" && v.Kind() == domain.KindNumber {
		return time.UnixMilli(int64(v.ToNumber())).UTC().Format("2006-01-02")
	}
	return v.ToString()
}
