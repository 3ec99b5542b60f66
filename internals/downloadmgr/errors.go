package downloadmgr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrDirectoryCreateFailed is returned when a required directory can not be created
type ErrDirectoryCreateFailed struct {
	Path string
	Err  error
}

func (e *ErrDirectoryCreateFailed) Error() string {
	return fmt.Sprintf("could not create directory %s: %s", e.Path, e.Err)
}

func (e *ErrDirectoryCreateFailed) Unwrap() error { return e.Err }

// ErrFileWriteFailed is returned when a verified file can not be written to its destination
type ErrFileWriteFailed struct {
	Path string
	Err  error
}

func (e *ErrFileWriteFailed) Error() string {
	return fmt.Sprintf("could not write %s: %s", e.Path, e.Err)
}

func (e *ErrFileWriteFailed) Unwrap() error { return e.Err }

// ErrMissingDownloadInfo is returned for libraries that have neither an artifact,
// classifiers nor a direct url
type ErrMissingDownloadInfo struct {
	Library string
}

func (e *ErrMissingDownloadInfo) Error() string {
	return fmt.Sprintf("library %s has no download information", e.Library)
}

// ErrInvalidURL is returned if a url built from manifest data can not be used
type ErrInvalidURL struct {
	URL string
	Err error
}

func (e *ErrInvalidURL) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid url %q", e.URL)
	}
	return fmt.Sprintf("invalid url %q: %s", e.URL, e.Err)
}

func (e *ErrInvalidURL) Unwrap() error { return e.Err }

// ErrInvalidPath is returned if a manifest path points outside of its root directory
type ErrInvalidPath struct {
	Path string
}

func (e *ErrInvalidPath) Error() string {
	return fmt.Sprintf("invalid file path %q", e.Path)
}

// ErrFetchFailed wraps transport level errors (dns, tls, connection resets …)
type ErrFetchFailed struct {
	URL string
	Err error
}

func (e *ErrFetchFailed) Error() string {
	return fmt.Sprintf("error while fetching %s: %s", e.URL, e.Err)
}

func (e *ErrFetchFailed) Unwrap() error { return e.Err }

// ErrInvalidResponse is returned for non 2xx responses
type ErrInvalidResponse struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid status code: %s from %s", e.Status, e.URL)
}

// ErrEmptyResponse is returned when the server responded without content
type ErrEmptyResponse struct {
	URL string
}

func (e *ErrEmptyResponse) Error() string {
	return fmt.Sprintf("empty response from %s", e.URL)
}

// ErrHashMismatch is returned when the downloaded file's sha1 sum does not match the expected one.
// The file is not written in this case
type ErrHashMismatch struct {
	FileName string
	Expected string
	Actual   string
}

func (e *ErrHashMismatch) Error() string {
	return fmt.Sprintf(
		"file corrupted: %s sha1 is invalid.\n\texpected to be \"%s\"\n\tbut actually is \"%s\"",
		e.FileName,
		e.Expected,
		e.Actual,
	)
}

// IsTransient reports whether err is worth retrying: transport errors,
// empty responses and 429 or 5xx responses
func IsTransient(err error) bool {
	var fetchErr *ErrFetchFailed
	var emptyErr *ErrEmptyResponse
	var responseErr *ErrInvalidResponse
	switch {
	case errors.As(err, &fetchErr), errors.As(err, &emptyErr):
		return true
	case errors.As(err, &responseErr):
		return responseErr.StatusCode == http.StatusTooManyRequests || responseErr.StatusCode >= 500
	default:
		return false
	}
}
