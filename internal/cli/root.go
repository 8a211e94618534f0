// Package cli is the aquatrack command tree. The bare command runs the
// dashboard; subcommands drive the same controller headlessly.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sadopc/aquatrack/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo records build metadata for the version command.
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

// rootOptions carries the resolved configuration to subcommands.
type rootOptions struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
}

// New returns the root command with every subcommand attached.
func New() *cobra.Command {
	o := &rootOptions{v: config.New()}

	cmd := &cobra.Command{
		Use:   "aquatrack",
		Short: "Track today's water intake against a daily goal.",
		Long: `aquatrack records how much water you drink today and shows progress
toward your daily goal. Run it without arguments for the dashboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(o.v, o.cfgFile)
			if err != nil {
				return err
			}
			o.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, o)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.cfgFile, "config", "", "Config file (default <user config dir>/aquatrack/config.yaml).")
	flags.String("backend", "", `Store backend, "sqlite" or "postgres".`)
	flags.String("db", "", "SQLite database path.")
	flags.String("dsn", "", "Postgres connection string.")
	_ = o.v.BindPFlag("store.backend", flags.Lookup("backend"))
	_ = o.v.BindPFlag("store.sqlite_path", flags.Lookup("db"))
	_ = o.v.BindPFlag("store.postgres_dsn", flags.Lookup("dsn"))

	addCommands(cmd, o)
	return cmd
}

func addCommands(topLevel *cobra.Command, o *rootOptions) {
	addAdd(topLevel, o)
	addRemove(topLevel, o)
	addReset(topLevel, o)
	addGoal(topLevel, o)
	addStatus(topLevel, o)
	addExport(topLevel, o)
	addVersion(topLevel)
}
