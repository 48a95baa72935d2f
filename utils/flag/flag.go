/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
	"testing"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment bool
	ByPassAuth    bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.BoolVar(&ByPassAuth, "bypass_auth", false, "set to true to skip JWT validation, for local development only")
	flag.StringVar(&ServiceName, "service", APIServer, "name of the service, used for logging and tracing")
	// Package init runs before the testing package registers its -test.*
	// flags, so parsing here would make every test binary fail at startup.
	if !testing.Testing() {
		flag.Parse()
	}
}
