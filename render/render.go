// Package render turns Leano replies into terminal text. Rendering is
// pure: every function maps a value to a string and never touches the
// network or the terminal itself.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/northvector/zitel/leano"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// Menu returns the interactive menu text.
func Menu() string {
	items := []string{
		"1  Live status dashboard",
		"2  Neighbour cell scan",
		"3  Enable DMZ forwarding",
		"4  Lock LTE band",
		"5  Raw command",
		"q  Quit",
	}
	return titleStyle.Render("ZITEL control") + "\n" + strings.Join(items, "\n") + "\n"
}

// RawResponse renders a reply as indented JSON with sorted keys, the form
// used for raw commands.
func RawResponse(r leano.Response) string {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v\n", r)
	}
	return string(out) + "\n"
}

// Outcome renders a one-shot command verdict: what was attempted, whether
// the device accepted it, and the device's result code when present.
func Outcome(action string, r leano.Response) string {
	verdict := okStyle.Render("done")
	if !r.OK() {
		if status := r.Field(leano.FieldStatus); status != "" {
			verdict = failStyle.Render("refused (" + status + ")")
		} else {
			verdict = failStyle.Render("refused")
		}
	}
	if code := r.Code(); code != "" {
		return fmt.Sprintf("%s: %s [code %s]\n", action, verdict, code)
	}
	return fmt.Sprintf("%s: %s\n", action, verdict)
}
