package main

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/asyncir/asyncir/types/xslices"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
)

// countTable renders a two-column table of counts keyed by name.
func countTable(header string, counts map[string]int) *lgtable.Table {
	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if row < 0 {
				return headerRowStyle
			}
			if row%2 == 0 {
				s = oddRowStyle
			} else {
				s = evenRowStyle
			}
			if col == 1 {
				s = s.Align(lipgloss.Right)
			}
			return
		})
	t.Headers(header, "count")
	for _, name := range xslices.SortedKeys(counts) {
		t.Row(name, strconv.Itoa(counts[name]))
	}
	return t
}
