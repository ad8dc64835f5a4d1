// Package version exposes build information. Values are set at link time:
//
//	go build -ldflags "-X github.com/farcloser/soundcheck/version.version=v1.0.0 -X github.com/farcloser/soundcheck/version.commit=$(git rev-parse --short HEAD)"
package version

//nolint:gochecknoglobals // overridden by the linker
var (
	name    = "soundcheck"
	version = "dev"
	commit  = "unknown"
)

// Name returns the binary name.
func Name() string {
	return name
}

// Version returns the release version.
func Version() string {
	return version
}

// Commit returns the source commit the binary was built from.
func Commit() string {
	return commit
}
