// Package renderer turns ledger data into markdown reports.
//
// Each report has a view type, built from the ledger, and a Render function
// executing embedded text/template files on it.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/finances"
)

//go:embed *.md
var templates embed.FS

var funcs = template.FuncMap{
	"cell": cell,
}

// cell escapes text for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// Currency formats amounts in a single currency. Views embed it so that
// templates can call {{.Money .Balance}}.
type Currency string

// Money formats m like "$1,234.50".
func (c Currency) Money(m finances.Money) string { return m.Format(string(c)) }

// SignedMoney formats m with an explicit sign, like "+$12.00".
func (c Currency) SignedMoney(m finances.Money) string { return m.SignedString(string(c)) }

// RenderSummary renders the overview of the ledger.
func RenderSummary(s *Summary) string {
	partials := map[string]string{
		"accounts_table":     "accounts_table.md",
		"statistics_table":   "statistics_table.md",
		"transactions_table": "transactions_table.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

// RenderAccounts renders the list of accounts with their balances.
func RenderAccounts(a *Accounts) string {
	partials := map[string]string{
		"accounts_table": "accounts_table.md",
	}
	return renderTemplate("accounts", "accounts.md", partials, a)
}

// RenderCategories renders categories grouped by kind.
func RenderCategories(c *Categories) string {
	partials := map[string]string{
		"categories_table": "categories_table.md",
	}
	return renderTemplate("categories", "categories.md", partials, c)
}

// RenderTransactions renders a list of transactions.
func RenderTransactions(t *Transactions) string {
	partials := map[string]string{
		"transactions_table": "transactions_table.md",
	}
	return renderTemplate("transactions", "transactions.md", partials, t)
}

// RenderStatistics renders the statistics of a month.
func RenderStatistics(s *Statistics) string {
	partials := map[string]string{
		"statistics_table": "statistics_table.md",
	}
	return renderTemplate("statistics", "statistics.md", partials, s)
}

// RenderDrifts renders the result of a balance check.
func RenderDrifts(d *Drifts) string {
	return renderTemplate("drifts", "drifts.md", nil, d)
}

// renderTemplate renders a main template that depends on several partials.
// Errors are rendered in place of the report.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
