// Package render draws the account grid, the summary panel and the history
// as terminal tables.
package render

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/session"
)

const (
	moneyFormat = "#,###.##"
	dateFormat  = "2006-01-02 15:04"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Formatter renders amounts with an optional currency symbol.
type Formatter struct {
	Currency string
}

// Money formats d with thousands separators and two decimals.
func (f Formatter) Money(d decimal.Decimal) string {
	r := d.Round(2)
	s := humanize.FormatFloat(moneyFormat, r.InexactFloat64())
	if f.Currency == "" {
		return s
	}
	if r.IsNegative() {
		return "-" + f.Currency + s[1:]
	}
	return f.Currency + s
}

// Rate formats an interest percentage.
func (f Formatter) Rate(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

// Accounts renders the account grid. The first column is the row index
// used by edits.
func (f Formatter) Accounts(accounts []model.Account) string {
	rows := make([][]string, len(accounts))
	for i, a := range accounts {
		rows[i] = []string{
			strconv.Itoa(i),
			a.Name,
			a.Bank,
			f.Money(a.Balance),
			f.Rate(a.Interest),
			string(a.Type),
		}
	}
	return newTable("#", "Name", "Bank", "Balance", "Interest", "Type").Rows(rows...).String()
}

// Summary renders the eight summary figures.
func (f Formatter) Summary(s model.Summary) string {
	fields := model.SummaryFields()
	rows := make([][]string, len(fields))
	for i, field := range fields {
		rows[i] = []string{field.Label(), f.Money(s.Value(field))}
	}
	return newTable("Figure", "Amount").Rows(rows...).String()
}

// History renders every snapshot, oldest first.
func (f Formatter) History(history []model.Summary) string {
	headers := []string{"#", "Date"}
	for _, field := range model.SummaryFields() {
		headers = append(headers, field.Label())
	}

	rows := make([][]string, len(history))
	for i, s := range history {
		row := []string{strconv.Itoa(i), formatDate(s.Date)}
		for _, field := range model.SummaryFields() {
			row = append(row, f.Money(s.Value(field)))
		}
		rows[i] = row
	}
	return newTable(headers...).Rows(rows...).String()
}

// Series renders one row per summary field with a column per snapshot index.
func (f Formatter) Series(series map[model.SummaryField][]session.Point) string {
	n := 0
	for _, points := range series {
		n = max(n, len(points))
	}

	headers := []string{"Field"}
	for i := 0; i < n; i++ {
		headers = append(headers, strconv.Itoa(i))
	}

	var rows [][]string
	for _, field := range model.SummaryFields() {
		row := []string{field.Label()}
		for _, p := range series[field] {
			row = append(row, f.Money(p.Value))
		}
		rows = append(rows, row)
	}
	return newTable(headers...).Rows(rows...).String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(dateFormat)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
