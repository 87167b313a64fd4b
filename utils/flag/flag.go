/*
flag Package set up cli flags shared across services

Usage:

	Flags are registered on import and parsed by the binary's main function,
	never here, so test binaries keep their own -test.* flags.
*/

package flag

import (
	"flag"
)

const (
	ServiceName = "socialpost_api"
)

var (
	AppConfigPath = flag.String("app_config_path", "cmd/server/config.yaml", "path to api server app config")
	Migrate       = flag.Bool("migrate", false, "apply the database schema before serving")
	Seed          = flag.Bool("seed", false, "load sample data after migration, implies -migrate")
)
