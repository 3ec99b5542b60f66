// Package downloadmgr turns a version manifest into a verified installation on disk.
//
// Every file goes through a [Fetcher] that skips files already matching their sha1,
// downloads everything else and refuses to write content that fails verification.
// Core files (client jar, libraries, natives, logging config, asset index) and assets
// are downloaded concurrently, assets in bounded waves.
package downloadmgr

import (
	"context"
	"crypto/sha1"
	"hash"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/juju/clock"
	"github.com/minepkg/mcfetch/internals/minecraft"
	"github.com/minepkg/mcfetch/internals/ownhttp"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout is the per request timeout
const DefaultTimeout = 60 * time.Second

var defaultClient = ownhttp.New()

// Options configure a DownloadManager. The zero value is usable
type Options struct {
	// HTTPClient is used for all requests
	HTTPClient *http.Client
	// NewHash creates the hasher files are verified with (sha1 if nil)
	NewHash func() hash.Hash
	// Logger receives structured logs. Nothing is logged if nil
	Logger *slog.Logger
	// Platform picks natives and evaluates library rules (current platform if empty)
	Platform minecraft.Platform
	// AssetCDN is the root url of asset objects
	AssetCDN string
	// WaveSize is the number of assets downloaded at once
	WaveSize int
	// Timeout limits every single request (DefaultTimeout if 0, negative disables it)
	Timeout time.Duration
	// Retries is the number of retries of transient errors. 0 disables retrying
	Retries int
	// RetryDelay is the delay before the first retry. It doubles every attempt
	RetryDelay time.Duration
	// Clock is used to wait between retries
	Clock clock.Clock
}

// DownloadManager acquires game files for version manifests
type DownloadManager struct {
	opts Options
	// waveHook is called with the size of every asset wave before it starts
	waveHook func(size int)
}

// New creates a new DownloadManager, filling in defaults for unset options
func New(opts Options) *DownloadManager {
	if opts.HTTPClient == nil {
		opts.HTTPClient = defaultClient
	}
	if opts.NewHash == nil {
		opts.NewHash = sha1.New
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Platform.OS == "" {
		opts.Platform = minecraft.CurrentPlatform()
	}
	if opts.AssetCDN == "" {
		opts.AssetCDN = minecraft.DefaultAssetCDN
	}
	if opts.WaveSize <= 0 {
		opts.WaveSize = DefaultWaveSize
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}
	if opts.Clock == nil {
		opts.Clock = clock.WallClock
	}
	return &DownloadManager{opts: opts}
}

// AcquireVersion acquires all files of a version using the default options
func AcquireVersion(ctx context.Context, manifest *minecraft.VersionManifest, metaRoot string, profileRoot string, onProgress ProgressFunc) error {
	return New(Options{}).AcquireVersion(ctx, manifest, metaRoot, profileRoot, onProgress)
}

// acquisition is the state of one AcquireVersion call
type acquisition struct {
	manifest *minecraft.VersionManifest
	layout   Layout
	fetcher  *Fetcher
	progress *Progress
	logger   *slog.Logger
	assetCDN string
	waveSize int
	waveHook func(size int)
}

// AcquireVersion downloads everything needed to run the version described by the manifest.
// The first error cancels all outstanding downloads, files written up to then stay on disk
// and are skipped by the next call
func (d *DownloadManager) AcquireVersion(ctx context.Context, manifest *minecraft.VersionManifest, metaRoot string, profileRoot string, onProgress ProgressFunc) error {
	logger := d.opts.Logger.With(slog.String("version", manifest.ID))
	logger.Info("starting download", slog.String("platform", d.opts.Platform.String()))

	if err := manifest.Validate(); err != nil {
		return err
	}

	layout := Layout{MetaDir: metaRoot, ProfileDir: profileRoot}
	if err := layout.Create(manifest.ID); err != nil {
		logger.Error("could not create directories", slog.Any("error", err))
		return err
	}

	progress := &Progress{}
	a := &acquisition{
		manifest: manifest,
		layout:   layout,
		progress: progress,
		logger:   logger,
		assetCDN: d.opts.AssetCDN,
		waveSize: d.opts.WaveSize,
		waveHook: d.waveHook,
		fetcher: &Fetcher{
			client:     d.opts.HTTPClient,
			newHash:    d.opts.NewHash,
			progress:   progress,
			onProgress: onProgress,
			logger:     logger,
			timeout:    d.opts.Timeout,
			retries:    d.opts.Retries,
			retryDelay: d.opts.RetryDelay,
			clock:      d.opts.Clock,
		},
	}

	coreTasks, err := a.coreTasks(d.opts.Platform)
	if err != nil {
		return err
	}
	// the asset index is a core file as well
	progress.SetTotal(ClassCore, len(coreTasks)+1)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.fetchCore(gCtx, coreTasks)
	})
	g.Go(func() error {
		return a.fetchAssets(gCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("download failed", slog.Any("error", err))
		return err
	}

	logger.Info(
		"finished download",
		slog.Int("core", progress.State(ClassCore).Completed),
		slog.Int("resources", progress.State(ClassResource).Completed),
	)
	return nil
}

// coreTasks lists the client jar, all library tasks and the logging config
func (a *acquisition) coreTasks(platform minecraft.Platform) ([]Task, error) {
	id := a.manifest.ID
	client, _ := a.manifest.Client()

	tasks := []Task{{
		URL:    client.URL,
		Target: a.layout.ClientJar(id),
		Sha1:   client.Sha1,
		Name:   "Client JAR",
		Class:  ClassCore,
	}}

	libs, err := libraryTasks(a.layout, a.manifest.Libraries, platform)
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, libs...)

	if logging := a.manifest.LoggingFile(); logging != nil {
		target, err := a.layout.LoggingConfig(id, logging.ID)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, Task{
			URL:    logging.URL,
			Target: target,
			Sha1:   logging.Sha1,
			Name:   "Logging Config",
			Class:  ClassCore,
		})
	}
	return tasks, nil
}

// fetchCore downloads all core tasks concurrently
func (a *acquisition) fetchCore(ctx context.Context, tasks []Task) error {
	a.logger.Info("starting core downloads", slog.Int("files", len(tasks)))

	g, gCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			err := a.fetcher.Fetch(gCtx, task)
			if err != nil && !errorIsCanceled(err) {
				a.logger.Error("download failed", slog.String("file", task.Name), slog.String("url", task.URL), slog.Any("error", err))
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a.logger.Info("finished core downloads")
	return nil
}
