package generator

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/takumakei/typed-extconf-gen/classgen"
)

var (
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// reportWritten prints a one line summary for people running the command in
// a terminal.
func reportWritten(w io.Writer, model *Model) {
	if !isTTY(w) {
		return
	}
	props := model.Request.Properties
	valid := len(classgen.ValidProperties(props))
	fmt.Fprintf(w, "%s %s (%s, %d properties", doneStyle.Render("wrote"), model.Output.Path, model.Request.ClassName, valid)
	if skipped := len(props) - valid; skipped > 0 {
		fmt.Fprint(w, ", ", warnStyle.Render(fmt.Sprintf("%d skipped", skipped)))
	}
	fmt.Fprintln(w, ")")
}
