package capture

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Laky-64/gologging"

	"github.com/jpp0ca/MusicRecognition-API/internal/ports"
)

// ErrMicrophoneAccess is reported when the device cannot be acquired or
// fails while recording.
var ErrMicrophoneAccess = errors.New("Could not access the microphone. Please ensure you've granted permission.")

// ErrRecordingCancelled is returned by StartRecording when StopRecording ran
// before the device finished opening.
var ErrRecordingCancelled = errors.New("capture: recording stopped before the device opened")

// State of a Controller.
type State int

const (
	Idle State = iota
	Recording
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Controller records from an AudioDevice into a single Payload.
//
// The device is held only while Recording and is stopped on every way out of
// that state: StopRecording, a failed start, and a device error. Chunks
// delivered after the session ended are ignored.
type Controller struct {
	device ports.AudioDevice

	mu      sync.Mutex
	state   State
	session uint64
	chunks  [][]byte
	payload *Payload
	lastErr error
}

func NewController(device ports.AudioDevice) *Controller {
	return &Controller{device: device}
}

// StartRecording acquires the device and begins buffering chunks. It is a
// no-op while already recording. On failure the controller stays Idle and
// the returned error wraps ErrMicrophoneAccess.
func (c *Controller) StartRecording() error {
	c.mu.Lock()
	if c.state == Recording {
		c.mu.Unlock()
		return nil
	}
	c.session++
	session := c.session
	c.state = Recording
	c.chunks = nil
	c.lastErr = nil
	c.mu.Unlock()

	err := c.device.Start(
		func(chunk []byte) { c.appendChunk(session, chunk) },
		func(err error) { c.fail(session, err) },
	)
	if err == nil {
		c.mu.Lock()
		current, newerRecording := c.session == session, c.state == Recording
		c.mu.Unlock()
		if current {
			gologging.DebugF("[capture] recording started (session %d)", session)
			return nil
		}
		// Stopped while the device was opening. A newer session that is
		// already recording keeps the device.
		if !newerRecording {
			if stopErr := c.device.Stop(); stopErr != nil {
				gologging.WarnF("[capture] releasing device after cancelled start: %v", stopErr)
			}
		}
		return ErrRecordingCancelled
	}

	if stopErr := c.device.Stop(); stopErr != nil {
		gologging.WarnF("[capture] releasing device after failed start: %v", stopErr)
	}

	startErr := fmt.Errorf("%w (%v)", ErrMicrophoneAccess, err)
	c.mu.Lock()
	if c.session == session {
		c.state = Idle
		c.chunks = nil
		c.lastErr = startErr
	}
	c.mu.Unlock()

	gologging.WarnF("[capture] could not start recording: %v", err)
	return startErr
}

// StopRecording releases the device and finalizes the buffered chunks. While
// Idle it does nothing and returns (nil, nil).
func (c *Controller) StopRecording() (*Payload, error) {
	c.mu.Lock()
	if c.state != Recording {
		c.mu.Unlock()
		return nil, nil
	}
	c.state = Idle
	c.session++
	chunks := c.chunks
	c.chunks = nil
	c.mu.Unlock()

	if err := c.device.Stop(); err != nil {
		gologging.WarnF("[capture] releasing device: %v", err)
	}

	payload, err := finalize(chunks, c.device.Format())

	c.mu.Lock()
	c.lastErr = err
	if err == nil {
		c.payload = payload
	}
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	gologging.DebugF("[capture] recording stopped: %d chunks, %d bytes %s", len(chunks), payload.Size(), payload.MimeType())
	return payload, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Payload returns the last finalized recording, or nil.
func (c *Controller) Payload() *Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload
}

// LastError returns the error of the last start, stop or device failure.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) appendChunk(session uint64, chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != session || c.state != Recording {
		return
	}
	c.chunks = append(c.chunks, append([]byte(nil), chunk...))
}

func (c *Controller) fail(session uint64, err error) {
	c.mu.Lock()
	if c.session != session || c.state != Recording {
		c.mu.Unlock()
		return
	}
	c.state = Idle
	c.session++
	c.chunks = nil
	c.lastErr = fmt.Errorf("%w (%v)", ErrMicrophoneAccess, err)
	c.mu.Unlock()

	if stopErr := c.device.Stop(); stopErr != nil {
		gologging.WarnF("[capture] releasing device after failure: %v", stopErr)
	}
	gologging.ErrorF("[capture] device failed while recording: %v", err)
}
