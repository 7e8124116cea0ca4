package cmd

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/glremix/glwrap/envconfig"
	"github.com/glremix/glwrap/generate"
	"github.com/glremix/glwrap/registry"
)

func NewListCmd(cfg envconfig.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [PREFIX]",
		Aliases: []string{"ls"},
		Short:   "List the selected commands with their stack sizes",
		Args:    cobra.MaximumNArgs(1),
		RunE:    listHandler,
	}

	addSelectionFlags(cmd, cfg)
	cmd.Flags().String("prefix", cfg.SymbolPrefix, "Symbol prefix of the wrapper implementations")

	return cmd
}

func listHandler(cmd *cobra.Command, args []string) error {
	sel, widths, err := selectionFromFlags(cmd)
	if err != nil {
		return err
	}

	path, err := cmd.Flags().GetString("xml")
	if err != nil {
		return err
	}

	prefix, err := cmd.Flags().GetString("prefix")
	if err != nil {
		return err
	}

	reg, err := registry.Load(path)
	if err != nil {
		return err
	}

	opts := generate.DefaultOptions()
	opts.Selection = sel
	opts.Widths = widths
	opts.Emit = emitOptions(prefix)

	result, err := generate.Build(reg, opts)
	if err != nil {
		return err
	}

	var data [][]string
	for _, e := range result.Entries {
		if len(args) == 0 || strings.HasPrefix(strings.ToLower(e.Command.Name), strings.ToLower(args[0])) {
			data = append(data, []string{
				e.Command.Name,
				e.Command.ReturnType,
				strconv.Itoa(len(e.Command.Params)),
				strconv.Itoa(e.StackSize),
				opts.Emit.DecoratedSymbol(e),
			})
		}
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"NAME", "RETURNS", "PARAMS", "STACK", "X86 SYMBOL"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}
