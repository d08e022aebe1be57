package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/northvector/zitel/leano"
)

// NeighbourTable renders a neighbour-cell scan as a bordered table, one
// row per reported cell. Cells the scan left blank stay blank.
func NeighbourTable(cells []leano.NeighbourCell) string {
	if len(cells) == 0 {
		return "no neighbour cells reported\n"
	}

	headers := []string{"#", "TYPE", "BAND", "PCID", "RSRQ", "RSRP", "RSRPPP"}
	rows := make([][]string, 0, len(cells))
	for i, cell := range cells {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			cell.Type,
			cell.Band,
			cell.PCID,
			cell.RSRQ,
			cell.RSRP,
			cell.RSRPPP,
		})
	}

	widths := make([]int, len(headers))
	for col, h := range headers {
		widths[col] = len(h)
	}
	for _, row := range rows {
		for col, v := range row {
			if len(v) > widths[col] {
				widths[col] = len(v)
			}
		}
	}

	line := func(row []string, style lipgloss.Style) string {
		parts := make([]string, len(row))
		for col, v := range row {
			parts[col] = fmt.Sprintf("%-*s", widths[col], v)
		}
		return style.Render(strings.Join(parts, "  "))
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, line(headers, titleStyle))
	for _, row := range rows {
		lines = append(lines, line(row, valueStyle))
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}
