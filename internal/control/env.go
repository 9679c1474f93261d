package control

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/salonplan/internal/config"
	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/schedule"
	"github.com/ja-he/salonplan/internal/storage"
	"github.com/ja-he/salonplan/internal/storage/providers"
)

// EnvData represents the environment data.
type EnvData struct {
	BaseDirPath string
	DatabaseURL string
	Latitude    string
	Longitude   string
}

// EnvDataFromEnvironment reads SALONPLAN_HOME (default
// '$HOME/.config/salonplan'), DATABASE_URL, LATITUDE, and LONGITUDE.
func EnvDataFromEnvironment() EnvData {
	var envData EnvData

	salonplanHome := os.Getenv("SALONPLAN_HOME")
	if salonplanHome == "" {
		envData.BaseDirPath = os.Getenv("HOME") + "/.config/salonplan"
	} else {
		envData.BaseDirPath = strings.TrimRight(salonplanHome, "/")
	}

	envData.DatabaseURL = os.Getenv("DATABASE_URL")
	envData.Latitude = os.Getenv("LATITUDE")
	envData.Longitude = os.Getenv("LONGITUDE")

	return envData
}

// LoadConfig reads '${SALONPLAN_HOME}/config.yaml' onto the defaults of the
// given theme and applies the environment's overrides.
// A missing config file is not an error.
func LoadConfig(envData EnvData, theme config.ColorschemeType) (config.Config, error) {
	yamlData, err := os.ReadFile(filepath.Join(envData.BaseDirPath, "config.yaml"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return config.Config{}, fmt.Errorf("can't read config file (%w)", err)
		}
		log.Debug().Str("dir", envData.BaseDirPath).Msg("no config file, using defaults")
		yamlData = nil
	}

	cfg, err := config.ParseConfigAugmentDefaults(theme, yamlData)
	if err != nil {
		return config.Config{}, fmt.Errorf("can't parse config data (%w)", err)
	}

	if envData.DatabaseURL != "" {
		cfg.Storage.DatabaseURL = envData.DatabaseURL
	}
	if envData.Latitude != "" && envData.Longitude != "" {
		cfg.Location.Latitude = envData.Latitude
		cfg.Location.Longitude = envData.Longitude
	}

	return cfg, nil
}

// ScheduleFromConfig returns the initial mode and window configured.
func ScheduleFromConfig(c config.Schedule) (schedule.Mode, schedule.TimeWindow, error) {
	mode, err := schedule.ParseMode(c.Mode)
	if err != nil {
		return 0, schedule.TimeWindow{}, err
	}
	if c.StartHour == nil || c.EndHour == nil || c.Scale == nil {
		return 0, schedule.TimeWindow{}, &schedule.ConfigurationError{Field: "schedule", Reason: "window not fully configured"}
	}
	window := schedule.TimeWindow{StartHour: *c.StartHour, EndHour: *c.EndHour, Scale: *c.Scale}
	if err := window.Validate(); err != nil {
		return 0, schedule.TimeWindow{}, err
	}
	return mode, window, nil
}

// SuntimesProviderFromConfig returns a sun times provider for the configured
// location, or nil if the location is unset or malformed.
func SuntimesProviderFromConfig(c config.Location, loc *time.Location) *model.SuntimesProvider {
	if c.Latitude == "" || c.Longitude == "" {
		return nil
	}
	latF, parseErrLat := strconv.ParseFloat(c.Latitude, 64)
	lonF, parseErrLon := strconv.ParseFloat(c.Longitude, 64)
	if parseErrLon != nil || parseErrLat != nil {
		log.Error().
			Interface("lon-parse-error", parseErrLon).
			Interface("lat-parse-error", parseErrLat).
			Msg("could not parse longitude/latitude")
		return nil
	}
	return &model.SuntimesProvider{Latitude: latF, Longitude: lonF, Location: loc}
}

// NewDataProvider constructs the record store selected in the configuration.
// The returned function releases the provider's resources and must be called
// when done.
func NewDataProvider(ctx context.Context, envData EnvData, c config.Storage) (storage.DataProvider, func(), error) {
	noop := func() {}

	switch c.Backend {
	case "", "files":
		return providers.NewFilesDataProvider(resolvePath(envData, c.Path)), noop, nil

	case "postgres":
		if c.DatabaseURL == "" {
			return nil, noop, fmt.Errorf("postgres backend selected but no database url configured")
		}
		p, err := providers.NewPostgresDataProvider(ctx, c.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return p, p.Close, nil

	case "ical":
		if c.ICSFile == "" {
			return nil, noop, fmt.Errorf("ical backend selected but no ics-file configured")
		}
		return providers.NewICalDataProvider(resolvePath(envData, c.ICSFile), time.Local), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend '%s'", c.Backend)
	}
}

// FilesDataProvider returns the files store of the configuration, regardless
// of the selected backend, e.g. as the target of an import.
func FilesDataProvider(envData EnvData, c config.Storage) *providers.FilesDataProvider {
	return providers.NewFilesDataProvider(resolvePath(envData, c.Path))
}

func resolvePath(envData EnvData, p string) string {
	if p == "" {
		p = "data"
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(envData.BaseDirPath, p)
}
