package capture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
)

// RecordingFilename is the upload filename of recorded audio.
const RecordingFilename = "recorded-audio.wav"

// Payload is a finalized recording. It is immutable.
type Payload struct {
	data     []byte
	mimeType string
	filename string
}

// Bytes returns a copy of the encoded audio.
func (p *Payload) Bytes() []byte {
	return append([]byte(nil), p.data...)
}

func (p *Payload) Size() int { return len(p.data) }
func (p *Payload) MimeType() string { return p.mimeType }
func (p *Payload) Filename() string { return p.filename }

// Request builds an upload request carrying the recording.
func (p *Payload) Request(returnMeta []string, market string) domain.FileRequest {
	return domain.FileRequest{
		Audio:      p.Bytes(),
		Filename:   p.filename,
		MimeType:   p.mimeType,
		ReturnMeta: returnMeta,
		Market:     market,
	}
}

// finalize concatenates chunks in arrival order. Raw PCM is wrapped in a WAV
// container; anything else keeps the device's container type.
func finalize(chunks [][]byte, format domain.AudioFormat) (*Payload, error) {
	var joined bytes.Buffer
	for _, chunk := range chunks {
		joined.Write(chunk)
	}

	if format.MimeType != domain.MimePCM && format.MimeType != "" {
		return &Payload{
			data:     joined.Bytes(),
			mimeType: format.MimeType,
			filename: RecordingFilename,
		}, nil
	}

	data, err := encodeWAV(joined.Bytes(), format)
	if err != nil {
		return nil, fmt.Errorf("capture: encoding wav: %w", err)
	}
	return &Payload{data: data, mimeType: domain.MimeWAV, filename: RecordingFilename}, nil
}

// encodeWAV wraps little-endian signed PCM samples in a WAV container.
func encodeWAV(pcm []byte, format domain.AudioFormat) ([]byte, error) {
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return nil, fmt.Errorf("invalid format %d Hz, %d channels", format.SampleRate, format.Channels)
	}

	samples, err := decodePCM(pcm, format.BitDepth)
	if err != nil {
		return nil, err
	}

	// wav.Encoder needs an io.WriteSeeker to patch the header sizes.
	tmp, err := os.CreateTemp("", "recording-*.wav")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	enc := wav.NewEncoder(tmp, format.SampleRate, format.BitDepth, format.Channels, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		Data:           samples,
		SourceBitDepth: format.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return os.ReadFile(tmp.Name())
}

func decodePCM(pcm []byte, bitDepth int) ([]int, error) {
	switch bitDepth {
	case 16:
		pcm = pcm[:len(pcm)-len(pcm)%2]
		out := make([]int, len(pcm)/2)
		for i := range out {
			out[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
		}
		return out, nil
	case 32:
		pcm = pcm[:len(pcm)-len(pcm)%4]
		out := make([]int, len(pcm)/4)
		for i := range out {
			out[i] = int(int32(binary.LittleEndian.Uint32(pcm[i*4:])))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
}
