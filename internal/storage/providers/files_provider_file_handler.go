package providers

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/storage"
)

// fileHandler holds the appointments of a single date, backed by one YAML file.
type fileHandler struct {
	mutex sync.Mutex

	basePath string
	date     model.Date

	data []model.Appointment
}

func newFileHandlerWithDataReadFromDisk(basePath string, date model.Date) (*fileHandler, error) {
	f := fileHandler{basePath: basePath, date: date}
	err := f.readFromDisk()
	if err != nil {
		return nil, fmt.Errorf("could not read file from disk (%w)", err)
	}
	return &f, nil
}

// Filename returns the path of the file backing this handler.
func (h *fileHandler) Filename() string {
	return path.Join(h.basePath, daysDirName, h.date.String()+".yaml")
}

// write stores the given appointments as this handler's file. The caller
// must hold the mutex.
func (h *fileHandler) write(appointments []model.Appointment) error {
	data, err := yaml.Marshal(appointments)
	if err != nil {
		return fmt.Errorf("could not marshal appointments of %s (%w)", h.date.String(), err)
	}

	filename := h.Filename()
	if err := os.MkdirAll(path.Dir(filename), 0755); err != nil {
		return fmt.Errorf("could not create directory for '%s' (%w)", filename, err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("could not write file '%s' (%w)", filename, err)
	}
	return nil
}

// get returns a copy of the handler's appointments.
func (h *fileHandler) get() []model.Appointment {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	result := make([]model.Appointment, len(h.data))
	copy(result, h.data)
	return result
}

// has returns whether an appointment with the ID is in this handler's file.
func (h *fileHandler) has(id string) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for i := range h.data {
		if h.data[i].ID == id {
			return true
		}
	}
	return false
}

// addAppointment writes the file with the appointment appended. The cached
// data only changes once the write succeeded.
func (h *fileHandler) addAppointment(a model.Appointment) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for i := range h.data {
		if h.data[i].ID == a.ID {
			return fmt.Errorf("id '%s' taken on %s (%w)", a.ID, h.date.String(), storage.ErrDuplicate)
		}
	}

	next := make([]model.Appointment, len(h.data), len(h.data)+1)
	copy(next, h.data)
	next = append(next, a)
	if err := h.write(next); err != nil {
		return err
	}
	h.data = next
	return nil
}

func (h *fileHandler) readFromDisk() error {
	h.data = []model.Appointment{}

	content, err := os.ReadFile(h.Filename())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("could not read file '%s' from disk (%w)", h.Filename(), err)
	}

	var appointments []model.Appointment
	if err := yaml.Unmarshal(content, &appointments); err != nil {
		return fmt.Errorf("could not parse file '%s' (%w)", h.Filename(), err)
	}

	// the date is implied by the file and may be left out in it
	for i := range appointments {
		if appointments[i].Date == "" {
			appointments[i].Date = h.date.String()
		}
	}
	h.data = appointments
	return nil
}
