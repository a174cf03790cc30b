package microphone

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/Laky-64/gologging"
	"github.com/gordonklaus/portaudio"

	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
)

const (
	DefaultSampleRate      = 44100
	DefaultFramesPerBuffer = 4096
	channels               = 1
	bitDepth               = 16
)

// Device implements ports.AudioDevice on the default PortAudio input. Each
// Start opens a new stream; Stop closes it and terminates PortAudio.
type Device struct {
	sampleRate int
	frames     int

	mu       sync.Mutex
	stream   *portaudio.Stream
	done     chan struct{}
	finished chan struct{}
}

// NewDevice returns a mono 16-bit device. Zero values select the defaults.
func NewDevice(sampleRate, framesPerBuffer int) *Device {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if framesPerBuffer <= 0 {
		framesPerBuffer = DefaultFramesPerBuffer
	}
	return &Device{sampleRate: sampleRate, frames: framesPerBuffer}
}

func (d *Device) Format() domain.AudioFormat {
	return domain.AudioFormat{
		MimeType:   domain.MimePCM,
		SampleRate: d.sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
	}
}

// Start opens the default input stream and reads it on a goroutine until
// Stop. Every buffer is delivered to onChunk as little-endian PCM; a read
// failure ends the loop and is passed to onError.
func (d *Device) Start(onChunk func([]byte), onError func(error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stream != nil {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("microphone: failed to initialize portaudio: %w", err)
	}

	buffer := make([]int16, d.frames*channels)
	stream, err := portaudio.OpenDefaultStream(channels, 0, float64(d.sampleRate), d.frames, buffer)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("microphone: failed to open audio stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("microphone: failed to start audio stream: %w", err)
	}

	d.stream = stream
	d.done = make(chan struct{})
	d.finished = make(chan struct{})

	go func(done, finished chan struct{}) {
		err := readLoop(stream, buffer, done, onChunk)
		close(finished)
		if err != nil {
			onError(err)
		}
	}(d.done, d.finished)

	gologging.DebugF("[microphone] capturing %d Hz mono", d.sampleRate)
	return nil
}

func readLoop(stream *portaudio.Stream, buffer []int16, done <-chan struct{}, onChunk func([]byte)) error {
	for {
		err := stream.Read()
		select {
		case <-done:
			return nil
		default:
		}
		if errors.Is(err, portaudio.InputOverflowed) {
			gologging.DebugF("[microphone] input overflowed")
		} else if err != nil {
			return fmt.Errorf("microphone: read failed: %w", err)
		}

		onChunk(encodePCM16(buffer))
	}
}

// encodePCM16 returns samples as little-endian signed 16-bit PCM.
func encodePCM16(samples []int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

// Stop stops the read loop and releases the stream. It is safe to call when
// not started.
func (d *Device) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stream == nil {
		return nil
	}

	stream := d.stream
	d.stream = nil
	close(d.done)

	stopErr := stream.Stop()
	<-d.finished
	closeErr := stream.Close()
	portaudio.Terminate()

	if stopErr != nil {
		return fmt.Errorf("microphone: failed to stop stream: %w", stopErr)
	}
	if closeErr != nil {
		return fmt.Errorf("microphone: failed to close stream: %w", closeErr)
	}
	return nil
}
