package providers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/storage"
)

const (
	daysDirName   = "days"
	staffFileName = "staff.yaml"
	roomsFileName = "rooms.yaml"
)

// FilesDataProvider stores appointments in one YAML file per date under
// '<base>/days/', next to the staff and room directories '<base>/staff.yaml'
// and '<base>/rooms.yaml'.
//
// Day files are read once and cached; Reload drops the cache.
type FilesDataProvider struct {
	BasePath string

	fhMutex      sync.RWMutex
	fileHandlers map[model.Date]*fileHandler

	// addMutex serializes adds, so that the check for a taken ID across
	// all files and the write are not interleaved.
	addMutex sync.Mutex
}

// NewFilesDataProvider constructs a files data provider for the given base
// directory, which need not exist yet.
func NewFilesDataProvider(basePath string) *FilesDataProvider {
	return &FilesDataProvider{
		BasePath:     basePath,
		fhMutex:      sync.RWMutex{},
		fileHandlers: make(map[model.Date]*fileHandler),
	}
}

func (p *FilesDataProvider) getFileHandler(date model.Date) (*fileHandler, error) {

	// check if already loaded
	p.fhMutex.RLock()
	fh, ok := p.fileHandlers[date]
	p.fhMutex.RUnlock()
	if ok {
		return fh, nil
	}

	p.fhMutex.Lock()
	defer p.fhMutex.Unlock()

	// someone may have loaded it in the meantime
	if fh, ok := p.fileHandlers[date]; ok {
		return fh, nil
	}

	fh, err := newFileHandlerWithDataReadFromDisk(p.BasePath, date)
	if err != nil {
		return nil, fmt.Errorf("could not load file handler for %s (%w)", date.String(), err)
	}
	p.fileHandlers[date] = fh
	return fh, nil
}

// GetAppointments returns the appointments stored for the dates of the range,
// ordered by date and then as they appear in the files.
func (p *FilesDataProvider) GetAppointments(ctx context.Context, dateRange model.DateRange) ([]model.Appointment, error) {
	if !dateRange.Valid() {
		return nil, fmt.Errorf("invalid date range %s", dateRange.String())
	}

	result := []model.Appointment{}
	for _, date := range dateRange.Dates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fh, err := p.getFileHandler(date)
		if err != nil {
			return nil, err
		}
		result = append(result, fh.get()...)
	}
	return result, nil
}

// GetStaff returns the staff directory.
func (p *FilesDataProvider) GetStaff(ctx context.Context) ([]model.Resource, error) {
	return readDirectory(path.Join(p.BasePath, staffFileName))
}

// GetRooms returns the room directory.
func (p *FilesDataProvider) GetRooms(ctx context.Context) ([]model.Resource, error) {
	return readDirectory(path.Join(p.BasePath, roomsFileName))
}

// AddAppointment validates the appointment and stores it in its date's file.
// IDs are unique across all dates; an ID taken on any date yields
// storage.ErrDuplicate.
func (p *FilesDataProvider) AddAppointment(ctx context.Context, a model.Appointment) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("refusing to store invalid appointment (%w)", err)
	}
	date, _ := a.ParsedDate()

	p.addMutex.Lock()
	defer p.addMutex.Unlock()

	takenOn, taken, err := p.dateOfID(ctx, a.ID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("id '%s' taken on %s (%w)", a.ID, takenOn.String(), storage.ErrDuplicate)
	}

	fh, err := p.getFileHandler(date)
	if err != nil {
		return err
	}
	return fh.addAppointment(a)
}

// dateOfID looks for the ID in all day files.
func (p *FilesDataProvider) dateOfID(ctx context.Context, id string) (model.Date, bool, error) {
	entries, err := os.ReadDir(path.Join(p.BasePath, daysDirName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Date{}, false, nil
		}
		return model.Date{}, false, fmt.Errorf("could not list day files (%w)", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return model.Date{}, false, err
		}
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		date, err := model.ParseDate(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			continue
		}
		fh, err := p.getFileHandler(date)
		if err != nil {
			return model.Date{}, false, err
		}
		if fh.has(id) {
			return date, true, nil
		}
	}
	return model.Date{}, false, nil
}

// Reload forgets all cached day files, so that the next read goes to disk.
func (p *FilesDataProvider) Reload() {
	p.fhMutex.Lock()
	defer p.fhMutex.Unlock()
	p.fileHandlers = make(map[model.Date]*fileHandler)
}

// WriteDirectories stores the staff and room directories, e.g. when importing.
// A nil directory is left untouched.
func (p *FilesDataProvider) WriteDirectories(staff, rooms []model.Resource) error {
	if err := os.MkdirAll(p.BasePath, 0755); err != nil {
		return fmt.Errorf("could not create '%s' (%w)", p.BasePath, err)
	}
	for filename, directory := range map[string][]model.Resource{staffFileName: staff, roomsFileName: rooms} {
		if directory == nil {
			continue
		}
		data, err := yaml.Marshal(directory)
		if err != nil {
			return fmt.Errorf("could not marshal %s (%w)", filename, err)
		}
		if err := os.WriteFile(path.Join(p.BasePath, filename), data, 0644); err != nil {
			return fmt.Errorf("could not write %s (%w)", filename, err)
		}
	}
	return nil
}

func readDirectory(filename string) ([]model.Resource, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Resource{}, nil
		}
		return nil, fmt.Errorf("could not read '%s' (%w)", filename, err)
	}

	var result []model.Resource
	if err := yaml.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("could not parse '%s' (%w)", filename, err)
	}
	return result, nil
}
