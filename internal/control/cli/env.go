package cli

import (
	"io"
	"os"

	"github.com/ja-he/salonplan/internal/config"
	"github.com/ja-he/salonplan/internal/control"
)

// loadEnvironment returns the environment and the configuration for the
// non-interactive commands, which do not depend on a theme.
func loadEnvironment() (control.EnvData, config.Config, error) {
	envData := control.EnvDataFromEnvironment()
	configData, err := control.LoadConfig(envData, config.Dark)
	return envData, configData, err
}

func outOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
