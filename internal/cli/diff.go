package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/laraui-labs/laraui/internal/branding"
	"github.com/laraui-labs/laraui/internal/diff"
	"github.com/laraui-labs/laraui/internal/install"
	"github.com/laraui-labs/laraui/internal/manifest"
)

var diffAll bool

var diffCmd = &cobra.Command{
	Use:   "diff [component]",
	Short: "Show installed components that differ from the registry",
	Long: `Compare installed component files with their registry originals.
Differences introduced by your configured namespace and tag prefix are
ignored; only real content changes are reported. Without arguments every
installed component is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffAll, "all", false, "Check every installed component")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
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
	names := componentsToCheck(install.Installed(afero.NewOsFs(), m, p.install), args)
	if len(names) == 0 {
		fmt.Fprintln(out, "No installed components to check.")
		return nil
	}

	printer := message.NewPrinter(language.English)
	printer.Fprintf(out, "Checking %d component(s) for updates...\n\n", len(names))

	engine := diff.New(p.client, diff.WithLogger(logger))
	drifted := 0
	for _, name := range names {
		report := engine.Check(ctx, name, m, p.install)
		printReport(out, m, report, verbose)
		if report.Diffs() > 0 {
			drifted++
		}
	}

	fmt.Fprintln(out)
	if drifted > 0 {
		fmt.Fprintln(out, "Some components have updates available.")
		fmt.Fprintf(out, "Run '%s add <component> --force' to update.\n", branding.CLIName())
	} else {
		fmt.Fprintln(out, "All components are up to date!")
	}
	return nil
}

// componentsToCheck narrows the installed set to the named component, if any.
func componentsToCheck(installed, args []string) []string {
	if len(args) == 0 {
		return installed
	}
	name := kebab(args[0])
	if slices.Contains(installed, name) {
		return []string{name}
	}
	return nil
}

func printReport(w io.Writer, m *manifest.Manifest, r diff.Report, detail bool) {
	spec, _ := m.Component(r.Component)
	display := spec.DisplayName(r.Component)

	n := r.Diffs()
	if n == 0 {
		fmt.Fprintf(w, "  ✓ %s: Up to date\n", display)
		return
	}
	fmt.Fprintf(w, "  ⚠ %s: %d file(s) differ\n", display, n)
	if !detail {
		return
	}
	for _, f := range r.Files {
		if f.State == diff.StateDiffers {
			fmt.Fprintf(w, "      %s\n", f.Path)
		}
	}
}
