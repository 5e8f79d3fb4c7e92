package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/laraui-labs/laraui/internal/branding"
	"github.com/laraui-labs/laraui/internal/config"
)

var (
	initForce      bool
	initVerify     bool
	initRegistry   string
	initPrefix     string
	initNamespace  string
	initComponents string
	initUtils      string
	initCSS        string
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration")
	initCmd.Flags().BoolVar(&initVerify, "verify", false, "Fetch the registry manifest to check it is reachable")
	initCmd.Flags().StringVar(&initRegistry, "registry", branding.DefaultRegistry(), "Registry base URL")
	initCmd.Flags().StringVar(&initPrefix, "prefix", config.DefaultPrefix, "Component tag prefix, as in <x-ui::button>")
	initCmd.Flags().StringVar(&initNamespace, "namespace", "", "PHP namespace for component classes (default: derived from --utils)")
	initCmd.Flags().StringVar(&initComponents, "components", config.DefaultComponentsPath, "Directory for Blade templates")
	initCmd.Flags().StringVar(&initUtils, "utils", config.DefaultUtilsPath, "Directory for PHP component classes")
	initCmd.Flags().StringVar(&initCSS, "css", config.DefaultCSSPath, "Main stylesheet")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the project configuration",
	Long: `Create ` + branding.ConfigFile() + ` in the project root with the install
directories, tag prefix and registry the other commands use.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(projectDir)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	out := cmd.OutOrStdout()
	if config.Exists(root) && !initForce {
		fmt.Fprintf(out, "%s is already initialized (%s). Use --force to overwrite.\n", branding.DisplayName(), config.Path(root))
		return nil
	}

	f := config.Default()
	f.Registry = initRegistry
	f.Prefix = initPrefix
	f.Namespace = initNamespace
	f.Aliases.Components = initComponents
	f.Aliases.Utils = initUtils
	f.Tailwind.CSS = initCSS

	if initVerify {
		m, err := newClient(f.InstallConfig(root).RegistryBaseURL).FetchManifest(cmd.Context(), true)
		if err != nil {
			return fmt.Errorf("checking registry: %w", err)
		}
		fmt.Fprintf(out, "Registry reachable: %d components\n", len(m.Components))
	}

	if err := config.Save(root, f); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	fmt.Fprintf(out, "Created %s\n\n", config.Path(root))
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  1. Add components: %s add button card input\n", branding.CLIName())
	fmt.Fprintf(out, "  2. Or browse:       %s list\n", branding.CLIName())
	return nil
}
