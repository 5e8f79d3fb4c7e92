package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/laraui-labs/laraui/internal/branding"
	"github.com/laraui-labs/laraui/internal/install"
	"github.com/laraui-labs/laraui/internal/manifest"
	"github.com/laraui-labs/laraui/internal/registry"
)

var (
	addAll    bool
	addForce  bool
	addNoDeps bool
	addPath   string
)

var addCmd = &cobra.Command{
	Use:   "add [component...]",
	Short: "Add components to the project",
	Long: `Copy components and their dependencies from the registry into the project.
Existing files are kept unless --force is given. Use "all" or --all to add
every component in the registry.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addAll, "all", false, "Add every registry component")
	addCmd.Flags().BoolVarP(&addForce, "force", "f", false, "Overwrite existing files")
	addCmd.Flags().BoolVar(&addNoDeps, "no-deps", false, "Add only the named components, skip dependencies")
	addCmd.Flags().StringVar(&addPath, "path", "", "Install into <path>/Components and <path>/views instead of the configured directories")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !addAll {
		return errors.New("no components given; name one or more components, or use --all")
	}

	p, err := openProject()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	m, err := p.client.FetchManifest(ctx, false)
	if err != nil {
		return fmt.Errorf("fetching registry: %w", err)
	}

	out := cmd.OutOrStdout()
	names := selectComponents(cmd.ErrOrStderr(), args, addAll, m)
	if len(names) == 0 {
		fmt.Fprintln(out, "No components selected.")
		return nil
	}
	if !addNoDeps {
		names = registry.Resolve(names, m)
	}

	cfg := p.install
	if addPath != "" {
		cfg = cfg.WithDestination(p.root, addPath)
	}

	printer := message.NewPrinter(language.English)
	printer.Fprintf(out, "Installing %d component(s)...\n\n", len(names))

	in := install.New(p.client,
		install.WithLogger(logger),
		install.WithObserver(func(name string, o install.Outcome) {
			printOutcome(out, m, name, o)
		}),
	)
	counts := install.Tally(in.Install(ctx, names, m, cfg, addForce))

	printer.Fprintf(out, "\nDone! Installed: %d, Skipped: %d, Errors: %d\n", counts.Installed, counts.Skipped, counts.Errors)
	if counts.Installed > 0 {
		tag := fmt.Sprintf("x-%s::%s", cfg.Prefix, names[0])
		fmt.Fprintf(out, "\nUsage:\n  <%s>Content</%s>\n", tag, tag)
	}

	if counts.Errors > 0 {
		return fmt.Errorf("%d component(s) failed to install; rerun '%s add' with --verbose for details", counts.Errors, branding.CLIName())
	}
	return nil
}

func printOutcome(w io.Writer, m *manifest.Manifest, name string, o install.Outcome) {
	spec, _ := m.Component(name)
	display := spec.DisplayName(name)

	switch o.Status {
	case install.StatusInstalled:
		fmt.Fprintf(w, "  ✓ %s\n", display)
	case install.StatusSkipped:
		fmt.Fprintf(w, "  ○ %s (already exists)\n", display)
	default:
		fmt.Fprintf(w, "  ✗ %s: %v\n", display, o.Err)
	}
}
