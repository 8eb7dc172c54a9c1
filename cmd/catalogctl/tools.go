package main

import (
	"fmt"
	"log/slog"
	"slices"
	"text/tabwriter"

	"toolbox/config"
	"toolbox/internal/domain/service"
	"toolbox/internal/infra/auth"
	"toolbox/internal/infra/dispatch"
	logs "toolbox/internal/infra/log"
	"toolbox/internal/infra/qrcode"
	"toolbox/internal/infra/tools"

	"github.com/spf13/cobra"
)

var showKinds bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the configured tool bindings",
	Long: `Build the dispatch registry from the configuration and print every
service id with the tool kind bound to it. Invalid bindings fail the command
the same way they fail server startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		logger, err := logs.New(logs.Params{Config: cfg})
		if err != nil {
			return err
		}

		kinds := tools.NewKinds(tools.Params{
			Config: cfg,
			QRCode: qrcode.New(cfg),
			Hasher: auth.NewBcryptHasher(cfg),
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

		if showKinds {
			fmt.Fprintln(w, "KIND")
			for _, kind := range sortedKinds(kinds) {
				fmt.Fprintln(w, kind)
			}

			return w.Flush()
		}

		registry, err := dispatch.New(dispatch.Params{Config: cfg, Kinds: kinds, Logger: quietLogger(logger)})
		if err != nil {
			return err
		}

		fmt.Fprintln(w, "SERVICE ID\tKIND")
		for _, b := range registry.Bindings() {
			fmt.Fprintf(w, "%s\t%s\n", b.ServiceID, b.Kind)
		}

		return w.Flush()
	},
}

func init() {
	toolsCmd.Flags().BoolVar(&showKinds, "kinds", false, "list the available tool kinds instead of the bindings")
	rootCmd.AddCommand(toolsCmd)
}

func sortedKinds(kinds service.ToolKinds) []service.ToolKind {
	out := make([]service.ToolKind, 0, len(kinds))
	for kind := range kinds {
		out = append(out, kind)
	}
	slices.Sort(out)

	return out
}

// quietLogger drops info records so command output stays machine readable.
func quietLogger(logger *slog.Logger) *slog.Logger {
	return slog.New(levelFloor{Handler: logger.Handler(), min: slog.LevelWarn})
}
