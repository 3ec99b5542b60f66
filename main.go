package main

import (
	"net/http"

	"github.com/minepkg/mcfetch/cmd"
	"github.com/minepkg/mcfetch/internals/ownhttp"
)

// set by goreleaser
var (
	version string
	commit  string
)

func main() {
	// replace default http client
	http.DefaultClient = ownhttp.New()

	if version != "" {
		cmd.Version = version
	}
	cmd.Commit = commit
	cmd.Execute()
}
