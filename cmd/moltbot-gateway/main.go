package main

import (
	"os"

	"github.com/upb/moltbot-gateway/services"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	root := newRootCmd()
	setVersionInfo(root, version, commit)
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode mirrors the container's exit status when the failure came from
// the launched process.
func exitCode(err error) int {
	if code, ok := services.GetErrorDetails(err)["exit_code"].(int); ok && code > 0 {
		return code
	}
	return 1
}
