// Package version reports which build of restclient is running. It feeds
// the default User-Agent header and the CLI's --version output.
//
// Release builds set the values through -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/restclient/version.Version=1.2.0"
//
// When restclient is consumed as a library, the module version recorded in
// the importing binary's build info is used instead of "dev".
package version
