package downloadmgr

import (
	"context"
	"encoding/hex"
	"errors"
	"hash"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/retry"
)

// Task is one file that should end up verified on disk
type Task struct {
	URL    string
	Target string
	// Sha1 is optional. Without it existing files are never trusted
	// and downloaded files are not verified
	Sha1 string
	// Name is only used for progress reporting
	Name  string
	Class DownloadClass
}

// Fetcher downloads tasks and verifies them against their hash
type Fetcher struct {
	client     *http.Client
	newHash    func() hash.Hash
	progress   *Progress
	onProgress ProgressFunc
	logger     *slog.Logger

	timeout    time.Duration
	retries    int
	retryDelay time.Duration
	clock      clock.Clock
}

// Fetch makes sure the task's target exists and matches the expected hash.
// Already satisfied files are not downloaded again
func (f *Fetcher) Fetch(ctx context.Context, t Task) error {
	dir := filepath.Dir(t.Target)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return &ErrDirectoryCreateFailed{Path: dir, Err: err}
	}

	if t.Sha1 != "" && f.satisfied(t) {
		f.complete(t)
		return nil
	}

	data, err := f.get(ctx, t.URL)
	if err != nil {
		return err
	}

	// check sha if there is one set
	if t.Sha1 != "" {
		actual := f.sum(data)
		if !strings.EqualFold(actual, t.Sha1) {
			return &ErrHashMismatch{FileName: t.Target, Expected: strings.ToLower(t.Sha1), Actual: actual}
		}
	}

	if err := writeFile(t.Target, data); err != nil {
		return &ErrFileWriteFailed{Path: t.Target, Err: err}
	}
	f.logger.Debug("saved file", slog.String("path", t.Target), slog.Int("bytes", len(data)))

	f.complete(t)
	return nil
}

// satisfied reports whether the target already exists with the expected hash
func (f *Fetcher) satisfied(t Task) bool {
	file, err := os.Open(t.Target)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warn("could not open existing file", slog.String("path", t.Target), slog.Any("error", err))
		}
		return false
	}
	defer file.Close()

	hasher := f.newHash()
	// probably io error during hashing
	if _, err := io.Copy(hasher, file); err != nil {
		f.logger.Warn("could not hash existing file", slog.String("path", t.Target), slog.Any("error", err))
		return false
	}

	actual := hex.EncodeToString(hasher.Sum(nil))
	if !strings.EqualFold(actual, t.Sha1) {
		f.logger.Warn(
			"corrupt file, re-fetching",
			slog.String("path", t.Target),
			slog.String("expected", t.Sha1),
			slog.String("actual", actual),
		)
		return false
	}
	return true
}

func (f *Fetcher) complete(t Task) {
	completed, total := f.progress.Increment(t.Class, t.Name)
	if f.onProgress != nil {
		f.onProgress(t.Name, completed, total, t.Class)
	}
}

func (f *Fetcher) sum(data []byte) string {
	hasher := f.newHash()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// get downloads the url, retrying transient errors if retries are enabled
func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	var data []byte
	attempt := func() error {
		var err error
		data, err = f.getOnce(ctx, rawURL)
		return err
	}

	if f.retries <= 0 {
		return data, attempt()
	}

	err := retry.Call(retry.CallArgs{
		Func: attempt,
		IsFatalError: func(err error) bool {
			return ctx.Err() != nil || !IsTransient(err)
		},
		NotifyFunc: func(err error, i int) {
			f.logger.Warn("retrying download", slog.String("url", rawURL), slog.Int("attempt", i), slog.Any("error", err))
		},
		Attempts:    f.retries + 1,
		Delay:       f.retryDelay,
		BackoffFunc: retry.DoubleDelay,
		Clock:       f.clock,
		Stop:        ctx.Done(),
	})
	if retry.IsAttemptsExceeded(err) || retry.IsRetryStopped(err) {
		if last := retry.LastError(err); last != nil {
			return nil, last
		}
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *Fetcher) getOnce(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ErrInvalidURL{URL: rawURL, Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, &ErrInvalidURL{URL: rawURL}
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &ErrInvalidURL{URL: rawURL, Err: err}
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, &ErrFetchFailed{URL: rawURL, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &ErrInvalidResponse{URL: rawURL, StatusCode: res.StatusCode, Status: res.Status}
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &ErrFetchFailed{URL: rawURL, Err: err}
	}
	if len(data) == 0 {
		return nil, &ErrEmptyResponse{URL: rawURL}
	}
	return data, nil
}

// writeFile writes data to a temporary file next to target and renames it into place
func writeFile(target string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// errorIsCanceled reports whether err was caused by a canceled group
func errorIsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
