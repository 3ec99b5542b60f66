package downloadmgr

import (
	"github.com/minepkg/mcfetch/internals/minecraft"
)

// libraryTasks expands the libraries into download tasks. Libraries not required on the
// platform are left out, so are natives without a classifier for the platform
func libraryTasks(layout Layout, libs minecraft.Libraries, platform minecraft.Platform) ([]Task, error) {
	tasks := make([]Task, 0, len(libs))

	for _, lib := range libs.Required(platform) {
		lib := lib
		switch {
		case lib.HasDownloads():
			if artifact := lib.Downloads.Artifact; artifact != nil && artifact.URL != "" {
				target, err := layout.Library(artifact.Path)
				if err != nil {
					return nil, err
				}
				tasks = append(tasks, Task{
					URL:    artifact.URL,
					Target: target,
					Sha1:   artifact.Sha1,
					Name:   "Library: " + lib.Name,
					Class:  ClassCore,
				})
			}

			// natives without a classifier for this platform are just skipped
			if native, ok := lib.NativeArtifact(platform); ok {
				target, err := layout.Native(native.Path)
				if err != nil {
					return nil, err
				}
				tasks = append(tasks, Task{
					URL:    native.URL,
					Target: target,
					Sha1:   native.Sha1,
					Name:   "Native: " + lib.Name,
					Class:  ClassCore,
				})
			}
		case lib.URL != "":
			// legacy libraries predate published hashes
			target, err := layout.Library(lib.LegacyPath())
			if err != nil {
				return nil, err
			}
			url, err := lib.LegacyURL()
			if err != nil {
				return nil, &ErrInvalidURL{URL: lib.URL, Err: err}
			}
			tasks = append(tasks, Task{
				URL:    url,
				Target: target,
				Name:   "Library: " + lib.Name,
				Class:  ClassCore,
			})
		default:
			return nil, &ErrMissingDownloadInfo{Library: lib.Name}
		}
	}

	return tasks, nil
}
