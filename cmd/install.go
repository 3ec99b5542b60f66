package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/dchest/uniuri"
	"github.com/dustin/go-humanize"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/minepkg/mcfetch/internals/cmdlog"
	"github.com/minepkg/mcfetch/internals/commands"
	"github.com/minepkg/mcfetch/internals/downloadmgr"
	"github.com/minepkg/mcfetch/internals/launchermeta"
	"github.com/minepkg/mcfetch/internals/minecraft"
	"github.com/minepkg/mcfetch/internals/natives"
	"github.com/minepkg/mcfetch/internals/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	runner := &installRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "install [version]",
		Short: "Downloads and verifies a minecraft version",
		Long: `Downloads the client jar, libraries, natives, logging config and assets of a minecraft version.
Files that are already present and match their checksum are not downloaded again,
corrupted files are replaced.

The version can be "latest", "latest-snapshot", an exact version like "1.19.4"
or a constraint like "~1.18". You will be asked to pick a version if none is given.`,
		Aliases: []string{"i", "fetch"},
		Args:    cobra.MaximumNArgs(1),
	}, runner)

	cmd.Flags().StringVar(&runner.manifestFile, "manifest", "", "install from a local version manifest (fabric, forge …)")
	cmd.Flags().BoolVar(&runner.snapshots, "snapshots", false, "include snapshots")
	cmd.Flags().BoolVar(&runner.skipSpaceCheck, "skip-space-check", false, "do not check for free disk space")
	cmd.Flags().Bool("no-natives", false, "do not extract native libraries")

	rootCmd.AddCommand(cmd.Command)
}

type installRunner struct {
	manifestFile   string
	snapshots      bool
	skipSpaceCheck bool

	out io.Writer
}

func (i *installRunner) RunE(cmd *cobra.Command, args []string) error {
	s := loadSettings(viper.GetViper())
	if noNatives, _ := cmd.Flags().GetBool("no-natives"); noNatives {
		s.ExtractNatives = false
	}

	commands.SetEmoji(!s.NoColor)
	i.out = cmd.OutOrStdout()
	logger := s.logger().With(slog.String("run", uniuri.NewLen(8)))
	interactive := !s.NonInteractive && isTerminal(os.Stdout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	steps := 3
	if s.ExtractNatives {
		steps++
	}
	printer := cmdlog.NewPrinter(i.out, s.NoColor)
	task := printer.NewTask(steps)

	// resolve
	task.Step("📚", "Resolving version")
	client := s.metaClient(logger)
	manifest, err := i.resolve(ctx, client, args, interactive)
	if err != nil {
		return toCliError(err, versionArg(args))
	}
	version := manifest.ID
	task.Info(fmt.Sprintf("Minecraft %s %s", utils.PrettyVersion(version), manifest.Type))
	task.Gray(fmt.Sprintf("platform %s, %d libraries", s.Platform, len(manifest.Libraries.Required(s.Platform))))

	// disk space
	task.Step("💾", "Checking disk space")
	size := manifest.DeclaredSize(s.Platform)
	if i.skipSpaceCheck {
		task.Warn("skipped, up to " + humanize.Bytes(uint64(size)) + " will be written")
	} else {
		if err := utils.EnsureFreeSpace(ctx, s.MetaDir, uint64(size)); err != nil {
			return toCliError(err, version)
		}
		task.Info(fmt.Sprintf("up to %s required", humanize.Bytes(uint64(size))))
	}

	// download
	task.Step("🚚", "Downloading files")
	start := time.Now()
	manager := s.downloadManager(logger)
	download := func(ctx context.Context, onProgress downloadmgr.ProgressFunc) error {
		return manager.AcquireVersion(ctx, manifest, s.MetaDir, s.ProfileDir, onProgress)
	}
	if interactive {
		err = runWithProgressUI(ctx, i.out, download)
	} else {
		err = runWithPlainProgress(ctx, i.out, download)
	}
	if err != nil {
		return toCliError(err, version)
	}
	task.Info(fmt.Sprintf("verified all files in %s", time.Since(start).Round(time.Millisecond)))

	// natives
	if s.ExtractNatives {
		task.Step("🔧", "Extracting natives")
		layout := downloadmgr.Layout{MetaDir: s.MetaDir, ProfileDir: s.ProfileDir}
		jars, err := natives.Collect(manifest.Libraries, s.Platform, layout)
		if err != nil {
			return toCliError(err, version)
		}
		extracted, err := natives.ExtractAll(jars, layout.NativesDir(version))
		if err != nil {
			return errors.Wrap(err, "could not extract natives")
		}
		task.Info(fmt.Sprintf("%d files from %d jars", extracted, len(jars)))
	}

	fmt.Fprintln(i.out)
	printer.Headline(fmt.Sprintf("%sMinecraft %s is ready in %s", commands.Emoji("✅ "), version, s.MetaDir))
	return nil
}

// resolve returns the fully merged manifest to install
func (i *installRunner) resolve(ctx context.Context, client *launchermeta.Client, args []string, interactive bool) (*minecraft.VersionManifest, error) {
	if i.manifestFile != "" {
		manifest, err := launchermeta.LoadManifestFile(i.manifestFile)
		if err != nil {
			return nil, err
		}
		return manifest, client.ResolveInheritance(ctx, manifest)
	}

	spinner := newMaybeSpinner(interactive, i.out)
	spinner.Start("Fetching version list …")
	list, err := client.Versions(ctx)
	spinner.Stop()
	if err != nil {
		return nil, err
	}

	var release *launchermeta.Release
	switch {
	case len(args) == 0 && interactive:
		release, err = selectRelease(list, i.snapshots)
	default:
		release, err = list.Resolve(versionArg(args), i.snapshots)
	}
	if err != nil {
		return nil, err
	}

	spinner.Start("Fetching manifest of " + release.ID + " …")
	defer spinner.Stop()
	return client.Manifest(ctx, release)
}

func selectRelease(list *launchermeta.VersionList, snapshots bool) (*launchermeta.Release, error) {
	releases := list.Filter(snapshots)
	items := make([]string, len(releases))
	for i, release := range releases {
		items[i] = release.ID + " (" + release.Type + ")"
	}

	i, err := utils.SelectPrompt(&promptui.Select{
		Label: "Minecraft version",
		Items: items,
		Size:  10,
	})
	if err != nil {
		return nil, err
	}
	return &releases[i], nil
}

func versionArg(args []string) string {
	if len(args) == 0 {
		return "latest"
	}
	return args[0]
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
