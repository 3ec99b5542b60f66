package downloadmgr

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/minepkg/mcfetch/internals/minecraft"
	"golang.org/x/sync/errgroup"
)

// DefaultWaveSize is the number of assets that are downloaded concurrently
const DefaultWaveSize = 20

// resolveAssetIndex makes sure the asset index is on disk and parses it
func (a *acquisition) resolveAssetIndex(ctx context.Context) (*minecraft.AssetIndex, error) {
	ref := a.manifest.AssetIndex
	target, err := a.layout.AssetIndex(ref.ID)
	if err != nil {
		return nil, err
	}

	task := Task{
		URL:    ref.URL,
		Target: target,
		Sha1:   ref.Sha1,
		Name:   "Asset Index",
		Class:  ClassCore,
	}

	_, statErr := os.Stat(target)
	switch {
	// without a hash an existing index is trusted as it is
	case ref.Sha1 == "" && statErr == nil:
		a.fetcher.complete(task)
	default:
		if err := a.fetcher.Fetch(ctx, task); err != nil {
			return nil, err
		}
	}

	raw, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("could not read asset index: %w", err)
	}
	index := &minecraft.AssetIndex{}
	if err := json.Unmarshal(raw, index); err != nil {
		return nil, fmt.Errorf("invalid asset index %s: %w", ref.ID, err)
	}
	return index, nil
}

// fetchAssets downloads all assets in waves. Waves run one after another,
// the assets of one wave are downloaded concurrently
func (a *acquisition) fetchAssets(ctx context.Context) error {
	a.logger.Info("starting asset downloads", slog.String("index", a.manifest.AssetIndex.ID))

	index, err := a.resolveAssetIndex(ctx)
	if err != nil {
		return err
	}

	paths := index.Paths()
	tasks := make([]Task, 0, len(paths))
	for _, path := range paths {
		obj := index.Objects[path]
		target, err := a.layout.AssetObject(obj)
		if err != nil {
			return fmt.Errorf("asset %s: %w", path, err)
		}
		tasks = append(tasks, Task{
			URL:    obj.DownloadURL(a.assetCDN),
			Target: target,
			Sha1:   obj.Hash,
			Name:   "Asset: " + path,
			Class:  ClassResource,
		})
	}
	a.progress.SetTotal(ClassResource, len(tasks))

	for start := 0; start < len(tasks); start += a.waveSize {
		end := start + a.waveSize
		if end > len(tasks) {
			end = len(tasks)
		}
		if err := a.fetchWave(ctx, tasks[start:end]); err != nil {
			return err
		}
	}

	a.logger.Info("finished asset downloads", slog.Int("assets", len(tasks)))
	return nil
}

func (a *acquisition) fetchWave(ctx context.Context, wave []Task) error {
	if a.waveHook != nil {
		a.waveHook(len(wave))
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, task := range wave {
		task := task
		g.Go(func() error {
			return a.fetcher.Fetch(gCtx, task)
		})
	}
	return g.Wait()
}
