package macro

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/evil/internal/input/key"
)

// Errors returned by the recorder and player.
var (
	ErrInvalidRegister = errors.New("invalid macro register")
	ErrRecording       = errors.New("already recording")
	ErrEmptyRegister   = errors.New("register is empty")
	ErrTooDeep         = errors.New("macro nesting too deep")
	ErrTooManyKeys     = errors.New("macro replayed too many keys")
)

// Recorder captures key events into one register at a time.
type Recorder struct {
	mu        sync.Mutex
	recording bool
	register  rune
	events    []key.Event
}

// NewRecorder creates an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins recording into register.
func (r *Recorder) Start(register rune) error {
	if !IsValidRegister(register) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("%w @%c", ErrRecording, r.register)
	}
	r.recording = true
	r.register = register
	r.events = nil
	return nil
}

// Stop ends the recording and returns the register and the captured
// events. It returns 0 when nothing was being recorded.
func (r *Recorder) Stop() (rune, []key.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return 0, nil
	}
	reg, events := r.register, r.events
	r.recording = false
	r.register = 0
	r.events = nil
	return reg, events
}

// Cancel drops the recording.
func (r *Recorder) Cancel() {
	r.Stop()
}

// Record appends event to the recording. It does nothing while idle.
func (r *Recorder) Record(event key.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		r.events = append(r.events, event)
	}
}

// Recording reports whether a recording is in progress.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Register returns the register being recorded into, or 0.
func (r *Recorder) Register() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register
}

// Len returns the number of events recorded so far.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
