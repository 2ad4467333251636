package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"

	configCmd "github.com/Art0r/settings-automation/cmd/config"
	syncCmd "github.com/Art0r/settings-automation/cmd/sync"
	"github.com/Art0r/settings-automation/cmd/util"
	"github.com/Art0r/settings-automation/cmd/version"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info and
// above.
const verboseLogKey = "SETTINGS_SYNC_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}

	rootCmd := syncCmd.New()
	rootCmd.AddCommand(
		configCmd.New(),
		version.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		util.HandleFatalError(err)
	}
}
