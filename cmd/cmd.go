package cmd

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glremix/glwrap/abi"
	"github.com/glremix/glwrap/emit"
	"github.com/glremix/glwrap/envconfig"
	"github.com/glremix/glwrap/generate"
	"github.com/glremix/glwrap/logutil"
	"github.com/glremix/glwrap/registry"
	"github.com/glremix/glwrap/version"
)

func NewCLI() *cobra.Command {
	cfg, cfgErr := envconfig.Load()

	rootCmd := &cobra.Command{
		Use:     "glwrap",
		Short:   "Generate OpenGL trampoline wrappers from the API registry",
		Version: version.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Disable usage printing on errors
			cmd.SilenceUsage = true

			if cfgErr != nil {
				return cfgErr
			}

			level := cfg.LogLevel()
			switch verbose, _ := cmd.Flags().GetCount("verbose"); {
			case verbose >= 2:
				level = min(level, logutil.LevelTrace)
			case verbose == 1:
				level = min(level, slog.LevelDebug)
			}
			logutil.Install(cmd.ErrOrStderr(), level)

			slog.Debug("environment", "config", cfg.Values())
			return nil
		},
	}

	rootCmd.PersistentFlags().CountP("verbose", "v", "Show debug output (repeat for per-command trace output)")

	cobra.EnableCommandSorting = false

	generateCmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Write the wrapper listing and, optionally, the linker alias listing",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateHandler(cmd)
		},
	}

	addSelectionFlags(generateCmd, cfg)
	generateCmd.Flags().StringP("output", "o", "", "Path to write the generated wrapper .inl file")
	generateCmd.Flags().StringP("alias-output", "a", "", "Optional path to write linker alias directives for the exported functions")
	generateCmd.Flags().String("prefix", cfg.SymbolPrefix, "Symbol prefix of the wrapper implementations")
	_ = generateCmd.MarkFlagRequired("output")
	appendEnvDocs(generateCmd, cfg)

	rootCmd.AddCommand(
		generateCmd,
		NewListCmd(cfg),
	)

	return rootCmd
}

func addSelectionFlags(cmd *cobra.Command, cfg envconfig.Config) {
	cmd.Flags().StringP("xml", "x", "", "Path to the Khronos gl.xml registry")
	cmd.Flags().StringP("min-version", "m", cfg.MinVersion, "Lowest OpenGL core version (inclusive) to include")
	cmd.Flags().StringP("max-version", "M", cfg.MaxVersion, "Highest OpenGL core version (inclusive) to include")
	cmd.Flags().StringSliceP("extension", "e", cfg.Extensions, "Extension whose commands are always included (repeatable)")
	cmd.Flags().StringSlice("api", cfg.APIs, "Feature APIs to include")
	cmd.Flags().StringToInt("width", nil, "Override the byte width of a scalar type, e.g. GLint64=8")
	_ = cmd.MarkFlagRequired("xml")
}

func selectionFromFlags(cmd *cobra.Command) (registry.Selection, abi.WidthTable, error) {
	var sel registry.Selection

	minVersion, err := cmd.Flags().GetString("min-version")
	if err != nil {
		return sel, nil, err
	}
	if sel.Min, err = registry.ParseVersion(minVersion); err != nil {
		return sel, nil, fmt.Errorf("--min-version: %w", err)
	}

	maxVersion, err := cmd.Flags().GetString("max-version")
	if err != nil {
		return sel, nil, err
	}
	if sel.Max, err = registry.ParseVersion(maxVersion); err != nil {
		return sel, nil, fmt.Errorf("--max-version: %w", err)
	}

	if sel.Min.Compare(sel.Max) > 0 {
		return sel, nil, fmt.Errorf("min version %s is greater than max version %s", sel.Min, sel.Max)
	}

	extensions, err := cmd.Flags().GetStringSlice("extension")
	if err != nil {
		return sel, nil, err
	}
	sel.Extensions = registry.AllowList(extensions)

	if sel.APIs, err = cmd.Flags().GetStringSlice("api"); err != nil {
		return sel, nil, err
	}

	overrides, err := cmd.Flags().GetStringToInt("width")
	if err != nil {
		return sel, nil, err
	}

	return sel, abi.DefaultWidths().Merge(overrides), nil
}

func generateHandler(cmd *cobra.Command) error {
	sel, widths, err := selectionFromFlags(cmd)
	if err != nil {
		return err
	}

	opts := generate.DefaultOptions()
	opts.Selection = sel
	opts.Widths = widths

	if opts.RegistryPath, err = cmd.Flags().GetString("xml"); err != nil {
		return err
	}
	if opts.Output, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	if opts.AliasOutput, err = cmd.Flags().GetString("alias-output"); err != nil {
		return err
	}

	prefix, err := cmd.Flags().GetString("prefix")
	if err != nil {
		return err
	}
	opts.Emit = emitOptions(prefix)

	slog.Debug("generating", "registry", opts.RegistryPath, "min", sel.Min, "max", sel.Max, "extensions", sel.Extensions)

	result, err := generate.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %s (%d commands)\n", opts.Output, len(result.Entries))
	if opts.AliasOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", opts.AliasOutput)
	}

	return nil
}

func appendEnvDocs(cmd *cobra.Command, cfg envconfig.Config) {
	vars := cfg.AsMap()

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sb strings.Builder
	sb.WriteString("\nEnvironment Variables:\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "      %-24s %s\n", vars[k].Name, vars[k].Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + sb.String())
}

// emitOptions is shared with the list command so both render the same names.
func emitOptions(prefix string) emit.Options {
	opts := emit.DefaultOptions()
	opts.ExportPrefix = prefix
	return opts
}
