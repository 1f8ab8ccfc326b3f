// Package version exposes the build version of seme.
package version

// version is overridden at build time:
//
//	go build -ldflags "-X github.com/Brian3647/nimi/pkg/version.version=v1.2.3"
var version = "dev" //nolint:gochecknoglobals // set via -ldflags

// GetVersion returns the build version string.
func GetVersion() string {
	return version
}

// UserAgent returns the HTTP User-Agent sent to the word API.
func UserAgent() string {
	return "seme/" + version
}
