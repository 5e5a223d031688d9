package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yigit/uniadmin/internal/export"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2a3850"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
)

// renderTables prints each table with its name as a title
func renderTables(w io.Writer, tables ...*export.Table) {
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, titleStyle.Render(t.Name))
		if len(t.Rows) == 0 {
			fmt.Fprintln(w, mutedStyle.Render("(no rows)"))
			continue
		}

		tbl := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			}).
			Headers(t.Headers...).
			Rows(t.Rows...)
		fmt.Fprintln(w, tbl.String())
	}
}

// printOK reports a successful mutation
func printOK(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, okStyle.Render(fmt.Sprintf(format, args...)))
}
