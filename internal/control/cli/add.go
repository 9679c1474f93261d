package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ja-he/salonplan/internal/control"
	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/storage"
)

// AddCommand contains flags for the `add` command line command, for
// `go-flags` to parse command line args into.
type AddCommand struct {
	Label    string `short:"n" long:"name" description:"the treatment or label of the appointment(s)" value-name:"<name>" required:"true"`
	Customer string `short:"c" long:"customer" description:"the customer" value-name:"<customer>"`
	Staff    string `long:"staff" description:"the id of the staff member performing it" value-name:"<id>"`
	Room     string `long:"room" description:"the id of the room it takes place in" value-name:"<id>"`
	Status   string `long:"status" description:"the status" value-name:"<status>" default:"pending"`
	Color    string `long:"color" description:"a color overriding the status color" value-name:"<#rrggbb>"`

	Date  string `short:"d" long:"date" description:"the date of the (first) appointment" value-name:"<yyyy-mm-dd>" required:"true"`
	Start string `short:"s" long:"start" description:"the time at which the appointment begins" value-name:"<HH:MM>" required:"true"`
	End   string `short:"e" long:"end" description:"the time at which the appointment ends" value-name:"<HH:MM>" required:"true"`

	RepeatInterval string `short:"r" long:"repeat-interval" description:"the repeat interval; if omitted, no repetition is assumed; requires end (til) date to be specified" choice:"daily" choice:"weekly" choice:"monthly"`
	RepeatTil      string `short:"t" long:"repeat-til" description:"the date until which to repeat the appointment; requires repeat inteval to be specified" value-name:"<yyyy-mm-dd>"`

	out io.Writer
}

// Execute executes the add command.
// (This gets called by `go-flags` when `add` is provided on the command line)
func (command *AddCommand) Execute(args []string) error {
	envData, configData, err := loadEnvironment()
	if err != nil {
		return err
	}

	status, err := model.ParseStatus(command.Status)
	if err != nil {
		return err
	}
	if command.Color != "" {
		if _, err := colorful.Hex(command.Color); err != nil {
			return fmt.Errorf("bad color '%s' (%w)", command.Color, err)
		}
	}

	date, err := model.ParseDate(command.Date)
	if err != nil {
		return err
	}
	dates, err := command.dates(date)
	if err != nil {
		return err
	}

	// validate all before writing any, so we don't add partial data
	appointments := make([]model.Appointment, 0, len(dates))
	for _, d := range dates {
		a := model.Appointment{
			ID:             uuid.NewString(),
			Date:           d.String(),
			StartTime:      command.Start,
			EndTime:        command.End,
			StaffID:        command.Staff,
			RoomID:         command.Room,
			Label:          command.Label,
			SecondaryLabel: command.Customer,
			Status:         status,
			Color:          command.Color,
		}
		if err := a.Validate(); err != nil {
			return err
		}
		appointments = append(appointments, a)
	}

	ctx := context.Background()
	provider, closeProvider, err := control.NewDataProvider(ctx, envData, configData.Storage)
	if err != nil {
		return fmt.Errorf("could not set up record store (%w)", err)
	}
	defer closeProvider()
	writer, err := storage.AsWriter(provider)
	if err != nil {
		return fmt.Errorf("cannot add to '%s' backend (%w)", configData.Storage.Backend, err)
	}

	out := outOrStdout(command.out)
	fmt.Fprintln(out, "adding:")
	for _, a := range appointments {
		if err := writer.AddAppointment(ctx, a); err != nil {
			return fmt.Errorf("could not add appointment on %s (%w)", a.Date, err)
		}
		d, _ := a.ParsedDate()
		fmt.Fprintf(out, " + %s (%s) %s-%s %s [%s]\n", a.Date, d.ToWeekday().String(), a.StartTime, a.EndTime, a.Label, a.ID)
	}
	return nil
}

// dates returns the dates to add the appointment on, per the repetition
// flags.
func (command *AddCommand) dates(first model.Date) ([]model.Date, error) {
	if (command.RepeatInterval == "") != (command.RepeatTil == "") {
		return nil, fmt.Errorf("either both repeat interval and 'til' date need to be specified, or neither")
	}
	if command.RepeatInterval == "" {
		return []model.Date{first}, nil
	}

	til, err := model.ParseDate(command.RepeatTil)
	if err != nil {
		return nil, err
	}
	if !til.IsAfter(first) {
		return nil, fmt.Errorf("repetition end ('til') date needs to be AFTER start date")
	}

	var result []model.Date
	switch command.RepeatInterval {
	case "daily", "weekly":
		step := 1
		if command.RepeatInterval == "weekly" {
			step = 7
		}
		for current := first; !current.IsAfter(til); current = current.Forward(step) {
			result = append(result, current)
		}
	case "monthly":
		// months lacking the day (e.g. the 31st) are skipped
		for k := 0; ; k++ {
			current, ok := monthsAfter(first, k)
			if current.IsAfter(til) {
				break
			}
			if ok {
				result = append(result, current)
			}
		}
	default:
		return nil, fmt.Errorf("unknown repeat interval '%s'", command.RepeatInterval)
	}
	return result, nil
}

// monthsAfter returns the same day of month k months after d, and whether
// that day exists. If it does not, the first of that month is returned.
func monthsAfter(d model.Date, k int) (model.Date, bool) {
	months := d.Month - 1 + k
	result := model.Date{Year: d.Year + months/12, Month: months%12 + 1, Day: d.Day}
	if !result.Valid() {
		return model.Date{Year: result.Year, Month: result.Month, Day: 1}, false
	}
	return result, true
}
