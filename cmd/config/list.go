package config

import (
	"fmt"
	"io"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mcfetch/internals/commands"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Prints the effective config as toml",
		Args:    cobra.NoArgs,
	}, &listRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type listRunner struct{}

func (l *listRunner) RunE(cmd *cobra.Command, args []string) error {
	return writeEffective(cmd.OutOrStdout(), viper.GetViper())
}

// writeEffective writes all config values (defaults, file, env & flags merged) as toml
func writeEffective(w io.Writer, v *viper.Viper) error {
	tree, err := toml.TreeFromMap(map[string]interface{}{})
	if err != nil {
		return err
	}
	for _, entry := range entries {
		tree.SetWithComment(entry.key, entry.help, false, tomlValue(v.Get(entry.key)))
	}

	out, err := tree.ToTomlString()
	if err != nil {
		return err
	}
	if file := configFile(); file != "" {
		fmt.Fprintln(w, gchalk.Gray("# "+file))
	}
	_, err = fmt.Fprint(w, out)
	return err
}

// tomlValue turns values into types the toml writer accepts. Durations become strings
func tomlValue(value interface{}) interface{} {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float32:
		return float64(v)
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	default:
		return v
	}
}
