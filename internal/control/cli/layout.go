package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/salonplan/internal/control"
	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/schedule"
)

// LayoutCommand contains flags for the `layout` command line command, for
// `go-flags` to parse command line args into.
type LayoutCommand struct {
	FromDay   string `short:"f" long:"from" description:"the first day to lay out" value-name:"<yyyy-mm-dd>" required:"true"`
	TilDay    string `short:"u" long:"til" description:"the last day to lay out (defaults to the range of the mode)" value-name:"<yyyy-mm-dd>"`
	Mode      string `short:"m" long:"mode" choice:"staff" choice:"room" choice:"day" choice:"week" description:"the mode (defaults to the configured one)"`
	Now       string `long:"now" description:"place the current-time indicator at this time on the first day" value-name:"<HH:MM>"`
	PackLanes bool   `long:"pack-lanes" description:"assign overlapping appointments to lanes"`

	out io.Writer
}

type layoutOutput struct {
	State        string                           `yaml:"state"`
	Mode         string                           `yaml:"mode"`
	Range        string                           `yaml:"range"`
	Window       schedule.TimeWindow              `yaml:"window"`
	Partitions   []schedule.Partition             `yaml:"partitions"`
	Indicator    *float64                         `yaml:"indicator,omitempty"`
	Appointments []schedule.PositionedAppointment `yaml:"appointments"`
}

// Execute executes the layout command.
// (This gets called by `go-flags` when `layout` is provided on the command
// line)
func (command *LayoutCommand) Execute(args []string) error {
	envData, configData, err := loadEnvironment()
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

	from, err := model.ParseDate(command.FromDay)
	if err != nil {
		return fmt.Errorf("could not parse 'from' date (%w)", err)
	}
	dateRange := schedule.RangeFor(mode, from)
	if command.TilDay != "" {
		til, err := model.ParseDate(command.TilDay)
		if err != nil {
			return fmt.Errorf("could not parse 'til' date (%w)", err)
		}
		dateRange = model.DateRange{Start: from, End: til}
	}

	var now time.Time
	if command.Now != "" {
		ts, err := model.ParseTimestamp(command.Now)
		if err != nil {
			return fmt.Errorf("could not parse 'now' (%w)", err)
		}
		now = time.Date(from.Year, time.Month(from.Month), from.Day, ts.Hour, ts.Minute, 0, 0, time.Local)
	}

	ctx := context.Background()
	provider, closeProvider, err := control.NewDataProvider(ctx, envData, configData.Storage)
	if err != nil {
		return fmt.Errorf("could not set up record store (%w)", err)
	}
	defer closeProvider()

	result := control.Fetch(ctx, provider, dateRange)
	if result.Err != nil {
		return result.Err
	}

	grid, err := schedule.Assemble(schedule.Request{
		Mode:         mode,
		Range:        dateRange,
		Window:       window,
		Staff:        result.Staff,
		Rooms:        result.Rooms,
		Appointments: result.Appointments,
		Loaded:       true,
		Now:          now,
		PackLanes:    command.PackLanes,
	})
	if err != nil {
		return err
	}

	output := layoutOutput{
		State:        grid.State.String(),
		Mode:         grid.Mode.String(),
		Range:        grid.Range.String(),
		Window:       grid.Window,
		Partitions:   grid.Partitions,
		Appointments: grid.Positioned,
	}
	if grid.HasIndicator {
		output.Indicator = &grid.Indicator
	}

	encoder := yaml.NewEncoder(outOrStdout(command.out))
	defer encoder.Close()
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("could not write layout (%w)", err)
	}
	return nil
}
