package generator

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goaux/contextvalue"
	"github.com/spf13/cobra"

	"github.com/takumakei/typed-extconf-gen/classgen"
	"github.com/takumakei/typed-extconf-gen/phpsource"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "List the declared properties and how they will be generated",
		Args:  cobra.NoArgs,
		RunE:  runInspect,

		SilenceErrors: true,
		SilenceUsage:  true,
	}
}

func runInspect(cmd *cobra.Command, _ []string) error {
	config, ok := contextvalue.From[*Config](cmd.Context())
	if !ok {
		panic("never")
	}
	v, err := settings(cmd, config)
	if err != nil {
		return err
	}
	input, err := readInput(cmd.InOrStdin(), v.GetString(flagIn))
	if err != nil {
		return err
	}
	req := request(input.Document, v)
	return inspect(cmd.OutOrStdout(), req)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func inspect(w io.Writer, req classgen.Request) error {
	if req.ExtensionKey != "" {
		fmt.Fprintf(w, "extension: %s\n", req.ExtensionKey)
		fmt.Fprintf(w, "namespace: %s\n", classgen.DeriveNamespace(req.ExtensionKey))
	}
	if req.ClassName != "" {
		fmt.Fprintf(w, "class:     %s\n", req.ClassName)
	}

	rows := make([][]string, 0, len(req.Properties))
	skipped := 0
	for i, p := range req.Properties {
		row, err := inspectRow(i, p)
		if err != nil {
			return err
		}
		if !p.Valid() {
			skipped++
		}
		rows = append(rows, row)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "NAME", "TYPE", "DEFAULT", "PATH", "REQUIRED", "LABEL", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d properties, %d skipped\n", len(req.Properties)-skipped, skipped)
	return nil
}

func inspectRow(i int, p classgen.PropertySpec) ([]string, error) {
	row := []string{fmt.Sprint(i), cell(p[classgen.KeyName]), cell(p[classgen.KeyType]), "", "", "", p.Label(), "skipped"}
	if !p.Valid() {
		return row, nil
	}
	name, _ := p.Name()
	t, _ := p.Type()
	if def, ok := classgen.CoerceDefault(p.Default(), t); ok {
		lit, err := phpsource.Literal(def)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
		row[3] = lit
	}
	row[4] = name
	for _, arg := range classgen.AssembleMetadata(p) {
		switch arg.Name {
		case classgen.ArgPath:
			row[4] = fmt.Sprint(arg.Value)
		case classgen.ArgRequired:
			row[5] = "yes"
		}
	}
	row[7] = "ok"
	return row, nil
}

func cell(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}
