package minecraft

// Artifact is an object describing a "thing" that can be downloaded
// It is used to download libraries, the minecraft client itself and the logging config
type Artifact struct {
	// Path of the file relative to the libraries (or natives) folder
	// Path is not set for the minecraft client itself
	Path string `json:"path,omitempty"`
	// ID is only set for logging configs and is used as the file name
	ID   string `json:"id,omitempty"`
	Sha1 string `json:"sha1"`
	// Size in bytes. This is advisory only, the hash is authoritative
	Size int64 `json:"size"`
	// URL to download the file
	URL string `json:"url"`
}
