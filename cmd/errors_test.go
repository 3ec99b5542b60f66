package cmd

import (
	"context"
	"fmt"
	"testing"

	"github.com/minepkg/mcfetch/internals/commands"
	"github.com/minepkg/mcfetch/internals/downloadmgr"
	"github.com/minepkg/mcfetch/internals/launchermeta"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCliError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantText    string
		code        string
		suggestions int
	}{
		{"hash", &downloadmgr.ErrHashMismatch{FileName: "client.jar"}, "A downloaded file is corrupted: client.jar", "hash_mismatch", 2},
		{"status", &downloadmgr.ErrInvalidResponse{URL: "https://example.com", StatusCode: 404, Status: "404 Not Found"}, "Could not download 1.19.4: invalid status code: 404 Not Found from https://example.com", "network", 3},
		{"dir", &downloadmgr.ErrDirectoryCreateFailed{Path: "/meta", Err: errors.New("permission denied")}, "could not create directory /meta: permission denied", "filesystem", 2},
		{"version", fmt.Errorf("1.99: %w", launchermeta.ErrInvalidVersion), "1.99: minecraft version does not exist", "unknown_version", 1},
		{"canceled", fmt.Errorf("asset: %w", context.Canceled), "Download canceled", "canceled", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := toCliError(tt.err, "1.19.4")
			var cliErr *commands.CliError
			require.ErrorAs(t, err, &cliErr)
			assert.Equal(t, tt.wantText, cliErr.Text)
			assert.Equal(t, tt.code, cliErr.Code)
			assert.Len(t, cliErr.Suggestions, tt.suggestions)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	plain := errors.New("something else")
	err := toCliError(plain, "1.19.4")
	assert.Equal(t, "could not install 1.19.4: something else", err.Error())
	assert.Equal(t, plain, errors.Cause(err))
}
