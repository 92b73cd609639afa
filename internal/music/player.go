// Package music plays the looping background track that follows the theme:
// one track for dark mode, another for light mode, swapped in place when the
// theme flips and resumed only if it was already playing.
package music

import (
	"errors"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/cosmic-portfolio/internal/config"
	"github.com/iburimskiy/cosmic-portfolio/internal/logging"
	"github.com/iburimskiy/cosmic-portfolio/internal/theme"
)

const (
	// levelWindow is how many recent samples feed the level meter.
	levelWindow = 2048
	// resampleQuality is used when a track's rate differs from the device.
	resampleQuality = 4
)

// Options configure the player.
type Options struct {
	DarkTrack, LightTrack string
	Volume                float64
	// LightStartOffset is where the light track starts when loaded.
	LightStartOffset time.Duration
	Autoplay         bool
}

func OptionsFrom(cfg config.MusicConfig) Options {
	return Options{
		DarkTrack:        cfg.DarkTrack,
		LightTrack:       cfg.LightTrack,
		Volume:           cfg.Volume,
		LightStartOffset: cfg.LightStartOffset,
		Autoplay:         cfg.Autoplay,
	}
}

// Player owns the audio chain: track -> loop -> level tap -> pause control
// -> volume -> output.
type Player struct {
	log  *logging.Logger
	opts Options
	out  Output
	open Opener
	pick Picker

	// rate is the device sample rate, zero until the output is initialised.
	rate beep.SampleRate

	dark   bool
	stream beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl
	tap    *levelTap

	playing bool
	// pending is set when autoplay failed; the next interaction retries.
	pending bool
	levels  []float64
	cancel  func()
	lastErr error
}

// New returns an idle player. Nil out, open and pick select the system
// speaker, OpenFile and the native file dialog.
func New(log *logging.Logger, opts Options, out Output, open Opener, pick Picker) *Player {
	if log == nil {
		log = logging.Discard()
	}
	if out == nil {
		out = Speaker()
	}
	if open == nil {
		open = OpenFile
	}
	if pick == nil {
		pick = FileDialog
	}
	return &Player{
		log:    log.Component("music"),
		opts:   opts,
		out:    out,
		open:   open,
		pick:   pick,
		dark:   true,
		levels: make([]float64, config.PlayerBars),
	}
}

// Attach follows sig: the player takes its current value and swaps tracks on
// every change until Close.
func (p *Player) Attach(sig *theme.Signal) {
	p.detach()
	p.dark = sig.Dark()
	p.cancel = sig.Subscribe(p.SetDark)
}

func (p *Player) detach() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Start begins playback when autoplay is on. A failure is not fatal: the
// player waits and Interact retries.
func (p *Player) Start() {
	if !p.opts.Autoplay {
		return
	}
	if err := p.Play(); err != nil {
		p.pending = true
		p.log.Warn("autoplay failed, waiting for user interaction", "track", p.Track(), "error", err)
	}
}

// Interact is called on the first click or key press after a failed
// autoplay.
func (p *Player) Interact() {
	if !p.pending || p.playing {
		return
	}
	if err := p.Play(); err != nil {
		p.log.Debug("play on interaction failed", "error", err)
	}
}

// Track is the path of the current theme's track.
func (p *Player) Track() string {
	if p.dark {
		return p.opts.DarkTrack
	}
	return p.opts.LightTrack
}

func (p *Player) Dark() bool { return p.dark }

func (p *Player) Playing() bool { return p.playing }

// Err is the last playback error, cleared by a successful Play.
func (p *Player) Err() error { return p.lastErr }

// Play resumes the loaded track or loads the current theme's track.
func (p *Player) Play() error {
	if p.ctrl == nil {
		if err := p.load(); err != nil {
			p.lastErr = err
			return err
		}
	}
	p.out.Lock()
	p.ctrl.Paused = false
	p.out.Unlock()

	p.playing = true
	p.pending = false
	p.lastErr = nil
	return nil
}

func (p *Player) Pause() {
	if p.ctrl != nil {
		p.out.Lock()
		p.ctrl.Paused = true
		p.out.Unlock()
	}
	p.playing = false
}

// Toggle flips between playing and paused.
func (p *Player) Toggle() error {
	if p.playing {
		p.Pause()
		return nil
	}
	return p.Play()
}

// SetDark swaps to the other theme's track, resuming only if music was
// playing.
func (p *Player) SetDark(dark bool) {
	p.dark = dark
	p.reload()
}

// SetTrack replaces the track of one theme. The current track is reloaded
// when it is the one replaced; the error is from resuming it.
func (p *Player) SetTrack(dark bool, path string) error {
	if dark {
		p.opts.DarkTrack = path
	} else {
		p.opts.LightTrack = path
	}
	if dark != p.dark {
		return nil
	}
	return p.reload()
}

// ChooseTrack asks the user for a file and uses it for the current theme.
// Cancelling the dialog is not an error.
func (p *Player) ChooseTrack() error {
	path, err := p.pick()
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return logging.WrapError(err, "failed to choose track")
	}
	p.log.Info("track chosen", "track", path, "dark", p.dark)
	return p.SetTrack(p.dark, path)
}

// reload drops the loaded track and resumes the new one if music was playing.
func (p *Player) reload() error {
	was := p.playing
	p.unload()
	if !was {
		return nil
	}
	if err := p.Play(); err != nil {
		p.log.Failure("failed to resume music", err, "track", p.Track())
		return err
	}
	return nil
}

// load opens the current track and queues it, paused, on the output.
func (p *Player) load() error {
	path := p.Track()
	if path == "" {
		return ErrNoTrack
	}
	s, format, err := p.open(path)
	if err != nil {
		return err
	}

	if p.rate == 0 {
		if err := p.out.Init(format.SampleRate, format.SampleRate.N(time.Second/20)); err != nil {
			_ = s.Close()
			return logging.WrapError(err, "failed to init audio output")
		}
		p.rate = format.SampleRate
	}

	if !p.dark {
		if off := format.SampleRate.N(p.opts.LightStartOffset); off > 0 && off < s.Len() {
			if err := s.Seek(off); err != nil {
				p.log.Warn("failed to seek light track", "track", path, "error", err)
			}
		}
	}

	var src beep.Streamer = beep.Loop(-1, s)
	if format.SampleRate != p.rate {
		src = beep.Resample(resampleQuality, format.SampleRate, p.rate, src)
	}
	tap := newLevelTap(src, config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: tap, Paused: true}
	p.out.Play(&effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Volume:   math.Log2(p.opts.Volume),
		Silent:   p.opts.Volume <= 0,
	})

	p.stream, p.format, p.ctrl, p.tap = s, format, ctrl, tap
	p.log.Info("track loaded", "track", path, "rate", int(format.SampleRate))
	return nil
}

func (p *Player) unload() {
	p.playing = false
	if p.stream == nil {
		return
	}
	p.out.Clear()
	if err := p.stream.Close(); err != nil {
		p.log.Warn("failed to close track", "error", err)
	}
	p.stream, p.ctrl, p.tap = nil, nil, nil
}

// Elapsed is the position in the current track.
func (p *Player) Elapsed() time.Duration {
	if p.stream == nil {
		return 0
	}
	p.out.Lock()
	pos := p.stream.Position()
	p.out.Unlock()
	return p.format.SampleRate.D(pos)
}

// Clock is Elapsed as MM:SS.
func (p *Player) Clock() string { return formatDuration(p.Elapsed()) }

// UpdateLevels refreshes the meter from the most recent samples. While
// paused the bars sink back to zero.
func (p *Player) UpdateLevels() {
	if p.tap == nil || !p.playing {
		for i := range p.levels {
			p.levels[i] *= config.SmoothingFactor
		}
		return
	}
	p.levels = bandLevels(p.levels, p.tap.snapshot(levelWindow), config.SmoothingFactor)
}

// Levels are the meter bars in [0, 1]. The slice is owned by the player.
func (p *Player) Levels() []float64 { return p.levels }

// Close stops following the theme and silences the output.
func (p *Player) Close() {
	p.detach()
	p.unload()
	p.pending = false
}
