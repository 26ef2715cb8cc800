// Package audio defines the playback surface used by ringing alarms, finished
// countdowns and the sleep timer, plus a player that resolves sound
// references and reports playback through the logger.
package audio

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// DefaultSound is the reference of the built-in sound.
const DefaultSound = "default"

// ErrSoundUnavailable is returned when a sound reference cannot be opened.
var ErrSoundUnavailable = errors.New("sound unavailable")

// Player plays one sound at a time.
type Player interface {
	// Play starts looping sound, replacing whatever is playing.
	Play(ctx context.Context, sound string) error
	// SetVolume sets the output volume in [0, 1].
	SetVolume(volume float64)
	// Stop halts playback; stopping an idle player is a no-op.
	Stop(ctx context.Context)
}

// PlayWithFallback plays sound, then fallback, then the built-in DefaultSound,
// stopping at the first one that plays. It returns the reference actually playing.
func PlayWithFallback(ctx context.Context, p Player, sound, fallback string) (string, error) {
	var lastErr error

	for _, candidate := range fallbackChain(sound, fallback) {
		err := p.Play(ctx, candidate)
		if err == nil {
			return candidate, nil
		}

		logger.WarnKV(ctx, "Sound unavailable, trying next", "sound", candidate, "error", err)

		lastErr = err
	}

	return "", fmt.Errorf("play fallback sound: %w", lastErr)
}

// fallbackChain lists the distinct non-empty references to try, in order.
func fallbackChain(sound, fallback string) []string {
	chain := make([]string, 0, 3)

	for _, candidate := range []string{sound, fallback, DefaultSound} {
		if candidate != "" && !slices.Contains(chain, candidate) {
			chain = append(chain, candidate)
		}
	}

	return chain
}

// Status is a point-in-time copy of a LogPlayer.
type Status struct {
	Playing bool
	Sound   string
	Volume  float64
}

// LogPlayer resolves sound references and logs playback transitions.
// References are DefaultSound, absolute paths, or file:// URIs.
type LogPlayer struct {
	mu     sync.Mutex
	status Status
}

// NewLogPlayer returns an idle player at full volume.
func NewLogPlayer() *LogPlayer {
	return &LogPlayer{status: Status{Volume: 1}}
}

// Play implements Player.
func (p *LogPlayer) Play(ctx context.Context, sound string) error {
	if err := Resolve(sound); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.Playing = true
	p.status.Sound = sound

	logger.InfoKV(ctx, "Playback started", "sound", sound, "volume", p.status.Volume)

	return nil
}

// SetVolume implements Player.
func (p *LogPlayer) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.Volume = min(max(volume, 0), 1)
}

// Stop implements Player.
func (p *LogPlayer) Stop(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.status.Playing {
		return
	}

	logger.InfoKV(ctx, "Playback stopped", "sound", p.status.Sound)

	p.status.Playing = false
	p.status.Sound = ""
}

// Status returns the current playback state.
func (p *LogPlayer) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.status
}

// Resolve checks that sound refers to a playable source.
func Resolve(sound string) error {
	if sound == DefaultSound {
		return nil
	}

	path := sound

	if strings.Contains(sound, "://") {
		u, err := url.Parse(sound)
		if err != nil {
			return fmt.Errorf("%q: %w", sound, ErrSoundUnavailable)
		}

		if u.Scheme != "file" {
			return fmt.Errorf("%q: unsupported scheme %q: %w", sound, u.Scheme, ErrSoundUnavailable)
		}

		path = u.Path
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%q: %w", sound, ErrSoundUnavailable)
	}

	return nil
}
