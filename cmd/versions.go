package cmd

import (
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"
	"github.com/gosuri/uitable"
	"github.com/minepkg/mcfetch/internals/commands"
	"github.com/minepkg/mcfetch/internals/launchermeta"
	"github.com/minepkg/mcfetch/internals/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func init() {
	runner := &versionsRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "versions",
		Short:   "Lists available minecraft versions",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVar(&runner.snapshots, "snapshots", false, "include snapshots, betas and alphas")
	cmd.Flags().StringVarP(&runner.output, "output", "o", "table", "output format (table or yaml)")
	cmd.Flags().StringVarP(&runner.constraint, "constraint", "c", "", "only list versions matching the semver constraint")
	cmd.Flags().IntVarP(&runner.limit, "limit", "n", 20, "max number of versions to list (0 lists all)")

	rootCmd.AddCommand(cmd.Command)
}

type versionsRunner struct {
	snapshots  bool
	output     string
	constraint string
	limit      int
}

func (v *versionsRunner) RunE(cmd *cobra.Command, args []string) error {
	s := loadSettings(viper.GetViper())
	client := s.metaClient(s.logger())

	list, err := client.Versions(cmd.Context())
	if err != nil {
		return err
	}

	releases, err := v.filter(list)
	if err != nil {
		return err
	}
	return v.write(cmd.OutOrStdout(), list, releases)
}

func (v *versionsRunner) filter(list *launchermeta.VersionList) ([]launchermeta.Release, error) {
	releases := list.Filter(v.snapshots)
	if v.constraint != "" {
		constraint, err := semver.NewConstraint(v.constraint)
		if err != nil {
			return nil, &commands.CliError{
				Text:        fmt.Sprintf("invalid version constraint %q", v.constraint),
				Suggestions: []string{"Use constraints like \"~1.19\" or \">=1.18.0 <1.19.0\""},
				Err:         err,
			}
		}
		releases = list.Matching(constraint, v.snapshots)
	}
	if v.limit > 0 && len(releases) > v.limit {
		releases = releases[:v.limit]
	}
	return releases, nil
}

func (v *versionsRunner) write(w io.Writer, list *launchermeta.VersionList, releases []launchermeta.Release) error {
	switch v.output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(releases)
	case "table", "":
		table := uitable.New()
		table.MaxColWidth = 50
		table.AddRow("VERSION", "TYPE", "RELEASED")
		for _, release := range releases {
			id := utils.PrettyVersion(release.ID)
			switch release.ID {
			case list.Latest.Release, list.Latest.Snapshot:
				id += " (latest)"
			}
			released := release.ReleaseTime
			if len(released) >= 10 {
				released = released[:10]
			}
			table.AddRow(id, release.Type, released)
		}
		_, err := fmt.Fprintln(w, table)
		return err
	default:
		return fmt.Errorf("unknown output format %q", v.output)
	}
}
