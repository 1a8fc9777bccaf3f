// Package buildinfo carries release metadata stamped by the linker:
//
//	go build -ldflags "-X github.com/m3rciful/contentbot/core/buildinfo.Version=v1.4.0 \
//	  -X github.com/m3rciful/contentbot/core/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/m3rciful/contentbot/core/buildinfo.Date=$(date -u +%FT%TZ)"
package buildinfo

var (
	Version = "dev"
	Commit  = "local"
	Date    = ""
)
