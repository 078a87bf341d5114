// Package cli contains the commands of the rowfold binary.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NewRootCommand enables all children commands to read flags from CLI flags,
// environment variables prefixed with ROWFOLD, or rowfold.yaml (in that order).
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "rowfold",
		Short: "Fold the rows of a SQL join into nested documents",
		Long: `rowfold runs a query that joins a parent table to its children and prints
each parent once, with its children nested under it, instead of one row per
(parent, child) pair.`,
		SilenceUsage: true,
	}
	root.AddCommand(NewQueryCommand(newConfig()))
	return root
}

func newConfig() *viper.Viper {
	v := viper.New()
	v.SetConfigName("rowfold")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("ROWFOLD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, path := range []string{"/etc/rowfold", "$HOME/.rowfold", "."} {
		v.AddConfigPath(path)
	}
	// A missing config file is fine; flags and env still apply.
	_ = v.ReadInConfig()
	return v
}

func mustBindPFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			panic("failed to bind pflag: " + err.Error())
		}
	})
}
