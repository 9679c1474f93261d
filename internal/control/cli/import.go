package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/salonplan/internal/control"
	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/storage"
	"github.com/ja-he/salonplan/internal/storage/providers"
)

// ImportCommand contains flags for the `import` command line command, for
// `go-flags` to parse command line args into.
type ImportCommand struct {
	Input   string `short:"i" long:"input" description:"the iCalendar file to import" value-name:"<file.ics>" required:"true"`
	FromDay string `short:"f" long:"from" description:"the first day to import (recurring events are expanded within the range)" value-name:"<yyyy-mm-dd>" required:"true"`
	TilDay  string `short:"u" long:"til" description:"the last day to import" value-name:"<yyyy-mm-dd>" required:"true"`
	DryRun  bool   `long:"dry-run" description:"only report what would be imported"`

	out io.Writer
}

// Execute executes the import command.
// (This gets called by `go-flags` when `import` is provided on the command
// line)
func (command *ImportCommand) Execute(args []string) error {
	envData, configData, err := loadEnvironment()
	if err != nil {
		return err
	}

	from, err := model.ParseDate(command.FromDay)
	if err != nil {
		return fmt.Errorf("could not parse 'from' date (%w)", err)
	}
	til, err := model.ParseDate(command.TilDay)
	if err != nil {
		return fmt.Errorf("could not parse 'til' date (%w)", err)
	}
	dateRange := model.DateRange{Start: from, End: til}
	if !dateRange.Valid() {
		return fmt.Errorf("invalid range %s", dateRange.String())
	}

	ctx := context.Background()
	source := providers.NewICalDataProvider(command.Input, time.Local)
	imported := control.Fetch(ctx, source, dateRange)
	if imported.Err != nil {
		return imported.Err
	}

	target := control.FilesDataProvider(envData, configData.Storage)
	existing := control.Fetch(ctx, target, dateRange)
	if existing.Err != nil {
		return existing.Err
	}

	staff := mergeDirectory(existing.Staff, imported.Staff)
	rooms := mergeDirectory(existing.Rooms, imported.Rooms)

	out := outOrStdout(command.out)
	added, skipped := 0, 0
	for _, a := range imported.Appointments {
		if err := a.Validate(); err != nil {
			log.Warn().Err(err).Str("appointment", a.ID).Msg("not importing invalid appointment")
			skipped++
			continue
		}
		if command.DryRun {
			fmt.Fprintf(out, " + %s %s-%s %s [%s]\n", a.Date, a.StartTime, a.EndTime, a.Label, a.ID)
			added++
			continue
		}
		err := target.AddAppointment(ctx, a)
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			log.Debug().Str("appointment", a.ID).Msg("already imported")
			skipped++
		case err != nil:
			return fmt.Errorf("could not import appointment '%s' (%w)", a.ID, err)
		default:
			added++
		}
	}

	if !command.DryRun {
		if err := target.WriteDirectories(staff, rooms); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "imported %d appointments, skipped %d, from %s\n", added, skipped, command.Input)
	return nil
}

// mergeDirectory appends the entries of additions not yet in base, keeping
// base's order and names.
func mergeDirectory(base, additions []model.Resource) []model.Resource {
	result := make([]model.Resource, 0, len(base)+len(additions))
	seen := make(map[string]struct{}, len(base))
	for _, r := range base {
		seen[r.ID] = struct{}{}
		result = append(result, r)
	}
	for _, r := range additions {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		result = append(result, r)
	}
	return result
}
