package music

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/cosmic-portfolio/internal/logging"
)

var (
	// ErrNoTrack is returned when the current theme has no track configured.
	ErrNoTrack = errors.New("no track configured")
	// ErrUnsupportedFormat is returned for files that are not wav, mp3 or flac.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Opener decodes the track at path.
type Opener func(path string) (beep.StreamSeekCloser, beep.Format, error)

// OpenFile decodes a wav, mp3 or flac file, picked by extension. Closing
// the returned streamer closes the file.
func OpenFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	var decode func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }
	case ".mp3":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }
	case ".flac":
		decode = func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, logging.WrapError(err, "failed to open track")
	}
	s, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, logging.WrapError(err, "failed to decode %s", filepath.Base(path))
	}
	return s, format, nil
}

// Output is the audio device. Lock and Unlock guard state the device
// goroutine reads while streaming; Play and Clear take the lock themselves.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerOutput struct{}

// Speaker is the system audio output.
func Speaker() Output { return speakerOutput{} }

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Clear() { speaker.Clear() }
func (speakerOutput) Lock() { speaker.Lock() }
func (speakerOutput) Unlock() { speaker.Unlock() }

// Picker asks the user for a track. It returns zenity.ErrCanceled when the
// user backs out.
type Picker func() (string, error)

// FileDialog opens the native file chooser.
func FileDialog() (string, error) {
	return zenity.SelectFile(
		zenity.Title("Choose background music"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
}
