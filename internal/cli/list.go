package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/laraui-labs/laraui/internal/branding"
	"github.com/laraui-labs/laraui/internal/install"
	"github.com/laraui-labs/laraui/internal/manifest"
)

var (
	listCategory  string
	listInstalled bool
	listAvailable bool
	listJSON      bool
	listRefresh   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry components",
	Long: `List the components published by the configured registry, grouped by
category, marking the ones already installed in this project.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only show components in this category")
	listCmd.Flags().BoolVar(&listInstalled, "installed", false, "Only show installed components")
	listCmd.Flags().BoolVar(&listAvailable, "available", false, "Only show components not yet installed")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listRefresh, "refresh", false, "Bypass the manifest cache")
	listCmd.MarkFlagsMutuallyExclusive("installed", "available")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a registry component for display.
type listEntry struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Dependencies []string `json:"dependencies"`
	Files        int      `json:"files"`
	Installed    bool     `json:"installed"`
}

type listFilter struct {
	category  string
	installed bool
	available bool
}

func runList(cmd *cobra.Command, args []string) error {
	p, err := openProject()
	if err != nil {
		return err
	}

	m, err := p.client.FetchManifest(cmd.Context(), listRefresh)
	if err != nil {
		return fmt.Errorf("fetching registry: %w", err)
	}

	installed := install.Installed(afero.NewOsFs(), m, p.install)
	entries := listEntries(m, installed, listFilter{
		category:  listCategory,
		installed: listInstalled,
		available: listAvailable,
	})

	if listJSON {
		return printListJSON(cmd.OutOrStdout(), entries)
	}
	return printListTable(cmd.OutOrStdout(), p.client.BaseURL(), m, entries, len(installed))
}

func listEntries(m *manifest.Manifest, installed []string, f listFilter) []listEntry {
	isInstalled := make(map[string]bool, len(installed))
	for _, name := range installed {
		isInstalled[name] = true
	}

	var entries []listEntry
	for _, key := range m.Names() {
		spec := m.Components[key]
		if f.category != "" && spec.Category != f.category {
			continue
		}
		if f.installed && !isInstalled[key] {
			continue
		}
		if f.available && isInstalled[key] {
			continue
		}

		deps := spec.Dependencies
		if deps == nil {
			deps = []string{}
		}
		entries = append(entries, listEntry{
			Key:          key,
			Name:         spec.DisplayName(key),
			Description:  spec.Description,
			Category:     spec.Category,
			Dependencies: deps,
			Files:        spec.FileCount(),
			Installed:    isInstalled[key],
		})
	}
	return entries
}

// groupByCategory returns category ids in lexical order with their entries.
func groupByCategory(entries []listEntry) ([]string, map[string][]listEntry) {
	groups := make(map[string][]listEntry)
	for _, e := range entries {
		groups[e.Category] = append(groups[e.Category], e)
	}
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, groups
}

func printListTable(w io.Writer, registryURL string, m *manifest.Manifest, entries []listEntry, installedCount int) error {
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "Registry: %s", registryURL)
	if m.Version != "" {
		fmt.Fprintf(w, " (v%s)", strings.TrimPrefix(m.Version, "v"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)
	p.Fprintf(w, "%s Components (%d total)\n\n", branding.DisplayName(), len(entries))

	ids, groups := groupByCategory(entries)
	for _, id := range ids {
		header := m.CategoryName(id)
		if desc := m.CategoryDescription(id); desc != "" {
			header += " - " + desc
		}
		fmt.Fprintln(w, header)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, e := range groups[id] {
			status := "○"
			if e.Installed {
				status = "✓"
			}
			deps := ""
			if len(e.Dependencies) > 0 {
				deps = "[requires: " + strings.Join(e.Dependencies, ", ") + "]"
			}
			fmt.Fprintf(tw, "  %s %s\t(%d files)\t%s\t%s\n", status, e.Name, e.Files, e.Description, deps)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	p.Fprintf(w, "Installed: %d/%d\n", installedCount, len(m.Components))
	fmt.Fprintf(w, "\nRun '%s add <component>...' or '%s add all' to install.\n", branding.CLIName(), branding.CLIName())
	return nil
}

func printListJSON(w io.Writer, entries []listEntry) error {
	if entries == nil {
		entries = []listEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
