// pkg/cli/cli.go

// Package cli holds small helpers shared by cobra commands: flag declaration
// and binding flags and environment to viper.
package cli

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AddStringFlag adds a string flag.
func AddStringFlag(cmd *cobra.Command, name, shorthand, def, help string) {
	cmd.Flags().StringP(name, shorthand, def, help)
}

// AddBoolFlag adds a boolean flag.
func AddBoolFlag(cmd *cobra.Command, name, shorthand string, def bool, help string) {
	cmd.Flags().BoolP(name, shorthand, def, help)
}

// BindFlagsToViper binds every flag in fs to a Viper instance under its own name.
func BindFlagsToViper(fs *pflag.FlagSet, v *viper.Viper) error {
	var result error
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			result = multierror.Append(result, err)
		}
	})
	return result
}

// SetViperEnvPrefix lets Viper read PREFIX_KEY environment variables, with
// dashes in keys mapped to underscores.
func SetViperEnvPrefix(v *viper.Viper, prefix string) {
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// GetString returns a string flag value, or "" when the flag is not defined.
func GetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// GetBool returns a bool flag value, or false when the flag is not defined.
func GetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
