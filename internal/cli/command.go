package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/poai/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "poai",
		Short: "Fill untranslated gettext catalogs with an LLM",
		Long: `poai fills the empty msgstr entries of gettext .po catalogs by asking
an LLM provider (OpenAI, Anthropic or Gemini) for each missing translation
and rewrites the catalogs in place.

Examples:
  poai -f locales/fr/messages.po -l fr     # Translate one catalog into French
  poai -f locales/de/messages.po           # Use the catalog's Language header
  poai -d locales --concurrency 4          # Translate every catalog below locales/
  poai -d locales --provider anthropic --dry-run
  poai --list-models --provider gemini`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.poai.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	// Input flags
	cmd.Flags().StringVarP(&flags.File, "file", "f", "", "Path to a .po file to translate")
	cmd.Flags().StringVarP(&flags.Directory, "directory", "d", "", "Directory containing .po files to batch translate")
	cmd.Flags().StringVar(&flags.Include, "include", flags.Include, `Glob pattern relative to the directory, e.g. "**/messages.po"`)
	cmd.Flags().StringVarP(&flags.Language, "language", "l", "", "Target language code, e.g. fr, de (directory mode: used for catalogs without a Language header)")

	// Provider flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Provider: openai (default), anthropic, or gemini")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model to use (e.g. gpt-4o-mini, claude-3-5-haiku-20241022, gemini-2.0-flash)")
	cmd.Flags().StringVar(&flags.Rules, "rules", "", `Additional translation rules (e.g. "only use first person, do not translate this word")`)
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List the models available to the selected provider")

	// Run flags
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Do not write files, just show planned changes")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", flags.Concurrency, "Parallel files to process")
	cmd.Flags().StringVar(&flags.OnMismatch, "on-mismatch", flags.OnMismatch, "Entries stored under a different msgid: skip, warn or fail")
	cmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop files already in flight after the first failed provider request")
	cmd.Flags().BoolVar(&flags.RollbackOnFailure, "rollback-on-failure", false, "Restore files already written when the run fails")
	cmd.Flags().StringVar(&flags.BackupDir, "backup-dir", "", "Copy the original catalogs into a timestamped directory here after a successful run")
	cmd.Flags().StringVar(&flags.Report, "report", "", "Write a YAML summary of the run to this file")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("language", cmd.Flags().Lookup("language"))
	viper.BindPFlag("include", cmd.Flags().Lookup("include"))
	viper.BindPFlag("provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("rules", cmd.Flags().Lookup("rules"))
	viper.BindPFlag("concurrency", cmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("on_mismatch", cmd.Flags().Lookup("on-mismatch"))
	viper.BindPFlag("fail_fast", cmd.Flags().Lookup("fail-fast"))
	viper.BindPFlag("rollback_on_failure", cmd.Flags().Lookup("rollback-on-failure"))
	viper.BindPFlag("backup_dir", cmd.Flags().Lookup("backup-dir"))
	viper.BindPFlag("report", cmd.Flags().Lookup("report"))
}

// ApplyConfig copies the bound viper values back into flags so settings
// from the config file and POAI_* variables apply to flags left unset on
// the command line.
func ApplyConfig(flags *Flags) {
	flags.Language = viper.GetString("language")
	flags.Include = viper.GetString("include")
	flags.Provider = viper.GetString("provider")
	flags.Model = viper.GetString("model")
	flags.Rules = viper.GetString("rules")
	flags.Concurrency = viper.GetInt("concurrency")
	flags.OnMismatch = viper.GetString("on_mismatch")
	flags.FailFast = viper.GetBool("fail_fast")
	flags.RollbackOnFailure = viper.GetBool("rollback_on_failure")
	flags.BackupDir = viper.GetString("backup_dir")
	flags.Report = viper.GetString("report")
}
