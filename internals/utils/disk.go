package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/disk"
)

// ErrNotEnoughSpace is returned by EnsureFreeSpace
var ErrNotEnoughSpace = errors.New("not enough free disk space")

// FreeSpace returns the free bytes of the disk containing path.
// path does not have to exist yet, the closest existing parent is used
func FreeSpace(ctx context.Context, path string) (uint64, error) {
	existing := existingParent(path)
	usage, err := disk.UsageWithContext(ctx, existing)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}

// EnsureFreeSpace fails with ErrNotEnoughSpace if less than required bytes are free
func EnsureFreeSpace(ctx context.Context, path string, required uint64) error {
	free, err := FreeSpace(ctx, path)
	if err != nil {
		return err
	}
	if free < required {
		return fmt.Errorf(
			"%w: %s required but only %s available in %s",
			ErrNotEnoughSpace,
			humanize.Bytes(required),
			humanize.Bytes(free),
			path,
		)
	}
	return nil
}

func existingParent(path string) string {
	path = filepath.Clean(path)
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}
