package cmd

import (
	"context"

	"github.com/minepkg/mcfetch/internals/commands"
	"github.com/minepkg/mcfetch/internals/downloadmgr"
	"github.com/minepkg/mcfetch/internals/launchermeta"
	"github.com/minepkg/mcfetch/internals/utils"
	"github.com/pkg/errors"
)

// toCliError turns errors of the download into errors with suggestions for the user
func toCliError(err error, version string) error {
	var (
		hashErr     *downloadmgr.ErrHashMismatch
		responseErr *downloadmgr.ErrInvalidResponse
		fetchErr    *downloadmgr.ErrFetchFailed
		emptyErr    *downloadmgr.ErrEmptyResponse
		dirErr      *downloadmgr.ErrDirectoryCreateFailed
		writeErr    *downloadmgr.ErrFileWriteFailed
		missingErr  *downloadmgr.ErrMissingDownloadInfo
		pathErr     *downloadmgr.ErrInvalidPath
		urlErr      *downloadmgr.ErrInvalidURL
	)

	switch {
	case errors.Is(err, context.Canceled):
		return &commands.CliError{Text: "Download canceled", Code: "canceled", Err: err}
	case errors.As(err, &hashErr):
		return &commands.CliError{
			Text: "A downloaded file is corrupted: " + hashErr.FileName,
			Code: "hash_mismatch",
			Help: "The server sent a file that does not match its checksum. Nothing was written.",
			Suggestions: []string{
				"Run the install again",
				"Check if a proxy modifies your downloads",
			},
			Err: err,
		}
	case errors.As(err, &responseErr), errors.As(err, &fetchErr), errors.As(err, &emptyErr):
		return &commands.CliError{
			Text: "Could not download " + version + ": " + err.Error(),
			Code: "network",
			Suggestions: []string{
				"Check your internet connection",
				"Increase the retries with `mcfetch config set retries 5`",
				"Run the install again. Files that were already downloaded are kept",
			},
			Err: err,
		}
	case errors.As(err, &dirErr), errors.As(err, &writeErr):
		return &commands.CliError{
			Text: err.Error(),
			Code: "filesystem",
			Suggestions: []string{
				"Check the permissions of the meta directory",
				"Use another directory with `mcfetch config set metaDir <dir>`",
			},
			Err: err,
		}
	case errors.As(err, &missingErr), errors.As(err, &pathErr), errors.As(err, &urlErr):
		return &commands.CliError{
			Text: "The version manifest of " + version + " is invalid: " + err.Error(),
			Code: "invalid_manifest",
			Err:  err,
		}
	case errors.Is(err, utils.ErrNotEnoughSpace):
		return &commands.CliError{
			Text:        err.Error(),
			Code:        "disk_space",
			Suggestions: []string{"Free up some space or use `--skip-space-check`"},
			Err:         err,
		}
	case errors.Is(err, launchermeta.ErrInvalidVersion), errors.Is(err, launchermeta.ErrNoMatchingVersion):
		return &commands.CliError{
			Text:        err.Error(),
			Code:        "unknown_version",
			Suggestions: []string{"List available versions with `mcfetch versions`"},
			Err:         err,
		}
	default:
		return errors.Wrapf(err, "could not install %s", version)
	}
}
