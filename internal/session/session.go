package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Keys written into State on every render.
const (
	KeyFilters         = "filtros"
	KeySelectedColumns = "colunas_selecionadas"
)

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Theme holds the two page colors.
type Theme struct {
	Background string
	Text       string
}

// Upload identifies the table currently shown to the session.
type Upload struct {
	Name     string
	ID       uuid.UUID
	Size     int64
	LoadedAt time.Time
}

// Flash is a message for the page. As Data.Flash it is shown once; as
// Data.Status it describes the current upload and stays until the next one.
type Flash struct {
	Kind string
	Text string
}

// Widgets holds the values of every input on the page.
type Widgets struct {
	Columns       []string
	ChartKind     string
	ChartColumn   string
	ShowHistogram bool
	HistColumn    string
	ShowScatter   bool
	ScatterX      string
	ScatterY      string
}

// Data is the mutable part of a session.
type Data struct {
	State     map[string]any
	Upload    *Upload
	Widgets   Widgets
	Theme     Theme
	Flash     *Flash
	Status    *Flash
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session is one browser's state, surviving across renders.
type Session struct {
	ID string

	mu   sync.Mutex
	data Data
}

func newSession(theme Theme) *Session {
	now := time.Now()
	return &Session{
		ID: uuid.NewString(),
		data: Data{
			State:     make(map[string]any),
			Theme:     theme,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// Update runs fn with exclusive access to the session data.
func (s *Session) Update(fn func(d *Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
	s.data.UpdatedAt = time.Now()
}

// Snapshot returns a copy of the session data that is safe to read without
// holding the lock.
func (s *Session) Snapshot() Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data
	d.State = make(map[string]any, len(s.data.State))
	for k, v := range s.data.State {
		d.State[k] = v
	}
	d.Widgets.Columns = append([]string(nil), s.data.Widgets.Columns...)
	if s.data.Upload != nil {
		u := *s.data.Upload
		d.Upload = &u
	}
	if s.data.Flash != nil {
		f := *s.data.Flash
		d.Flash = &f
	}
	if s.data.Status != nil {
		st := *s.data.Status
		d.Status = &st
	}
	return d
}

// TakeFlash returns the pending flash message, if any, and clears it.
func (s *Session) TakeFlash() *Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.data.Flash
	s.data.Flash = nil
	return f
}

// RecordSelection stores the current column selection under
// filtros/colunas_selecionadas, creating the filtros map on first use.
func (d *Data) RecordSelection(cols []string) {
	if d.State == nil {
		d.State = make(map[string]any)
	}
	filters, ok := d.State[KeyFilters].(map[string]any)
	if !ok {
		filters = make(map[string]any)
		d.State[KeyFilters] = filters
	}
	filters[KeySelectedColumns] = append([]string(nil), cols...)
}

// SelectedColumns reads back what RecordSelection stored.
func (d *Data) SelectedColumns() ([]string, bool) {
	filters, ok := d.State[KeyFilters].(map[string]any)
	if !ok {
		return nil, false
	}
	cols, ok := filters[KeySelectedColumns].([]string)
	return cols, ok
}
