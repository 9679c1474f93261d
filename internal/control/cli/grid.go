package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/salonplan/internal/config"
	"github.com/ja-he/salonplan/internal/control"
	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/potatolog"
	"github.com/ja-he/salonplan/internal/schedule"
	"github.com/ja-he/salonplan/internal/styling"
	"github.com/ja-he/salonplan/internal/tui"
)

// GridCommand contains flags for the `grid` command line command, for
// `go-flags` to parse command line args into.
type GridCommand struct {
	Day           string `short:"d" long:"day" description:"the day to show (defaults to today)" value-name:"<yyyy-mm-dd>"`
	Mode          string `short:"m" long:"mode" choice:"staff" choice:"room" choice:"day" choice:"week" description:"the initial mode (defaults to the configured one)"`
	Theme         string `short:"t" long:"theme" choice:"light" choice:"dark" description:"Select a 'dark' or a 'light' default theme (note: only sets defaults, which are individually overridden by settings in config.yaml"`
	LogOutputFile string `short:"l" long:"log-output-file" description:"specify a log output file (otherwise logs are only kept in memory)"`
	LogPretty     bool   `short:"p" long:"log-pretty" description:"prettify logs to file"`
}

// Execute executes the grid command.
// (This gets called by `go-flags` when `grid` is provided on the command line)
func (command *GridCommand) Execute(args []string) error {
	// set up stderr logger until TUI set up
	stderrLogger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// create TUI logger
	var logWriter io.Writer
	if command.LogOutputFile != "" {
		var fileLogger io.Writer
		file, err := os.OpenFile(command.LogOutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("could not open file '%s' for logging (%w)", command.LogOutputFile, err)
		}
		defer file.Close()
		if command.LogPretty {
			fileLogger = zerolog.ConsoleWriter{Out: file, NoColor: true}
		} else {
			fileLogger = file
		}
		logWriter = zerolog.MultiLevelWriter(fileLogger, potatolog.GlobalMemoryLogReaderWriter)
	} else {
		logWriter = potatolog.GlobalMemoryLogReaderWriter
	}
	tuiLogger := zerolog.New(logWriter).With().Timestamp().Caller().Logger()

	// temporarily log to both (in case the TUI doesn't get set we want the info
	// on the stderr logger, otherwise the TUI logger is relevant)
	log.Logger = log.Output(zerolog.MultiLevelWriter(stderrLogger, tuiLogger))

	theme, err := themeOf(command.Theme)
	if err != nil {
		return err
	}

	envData := control.EnvDataFromEnvironment()
	configData, err := control.LoadConfig(envData, theme)
	if err != nil {
		return err
	}

	mode, window, err := control.ScheduleFromConfig(configData.Schedule)
	if err != nil {
		return fmt.Errorf("invalid schedule configuration (%w)", err)
	}
	if command.Mode != "" {
		mode, err = schedule.ParseMode(command.Mode)
		if err != nil {
			return err
		}
	}

	// infer initial day either from flag or current date
	initialDay := model.DateFromGotime(time.Now())
	if command.Day != "" {
		initialDay, err = model.ParseDate(command.Day)
		if err != nil {
			return fmt.Errorf("could not parse given date (%w)", err)
		}
	}

	provider, closeProvider, err := control.NewDataProvider(context.Background(), envData, configData.Storage)
	if err != nil {
		return fmt.Errorf("could not set up record store (%w)", err)
	}
	defer closeProvider()

	stylesheet := styling.NewStylesheetFromConfig(configData.Stylesheet)
	statusStyling := styling.NewStatusStylingFromConfig(configData.Statuses, stylesheet.AppointmentFallback)

	data := control.NewControlData(envData, initialDay, mode, window, configData.Schedule.PackLanes != nil && *configData.Schedule.PackLanes)
	data.Suntimes = control.SuntimesProviderFromConfig(configData.Location, time.Local)

	screen, err := tui.NewTUIScreenHandler()
	if err != nil {
		return err
	}

	controller, err := NewController(data, provider, stylesheet, statusStyling, screen, time.Now)
	if err != nil {
		screen.Fini()
		return err
	}

	// now that the screen is initialized, we'll always want the TUI logger, so
	// we're making it the global logger
	log.Logger = tuiLogger

	controller.Run()
	return nil
}

func themeOf(name string) (config.ColorschemeType, error) {
	if name == "" {
		return config.Dark, nil
	}
	return config.ParseColorschemeType(name)
}
