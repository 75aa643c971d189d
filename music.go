package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

// MusicPlayer loops one mp3 track while a game is on screen.
type MusicPlayer struct {
	ctx    *oto.Context
	path   string
	mu     sync.Mutex
	player *oto.Player
	volume float64
}

// NewMusicPlayer returns nil without an audio device or a track.
func NewMusicPlayer(ctx *oto.Context, path string, volume float64) *MusicPlayer {
	if ctx == nil || path == "" {
		return nil
	}
	return &MusicPlayer{
		ctx:    ctx,
		path:   path,
		volume: clampVolume(volume),
	}
}

func (m *MusicPlayer) SetVolume(volume float64) {
	m.mu.Lock()
	m.volume = clampVolume(volume)
	m.mu.Unlock()
}

// Start plays the track from the top, or resumes it if it was paused.
func (m *MusicPlayer) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.player != nil {
		m.player.Play()
		return
	}
	track, err := openTrack(m.path)
	if err != nil {
		DebugLogf("music open failed: %v", err)
		return
	}
	m.player = m.ctx.NewPlayer(&volumeReader{
		reader:    &loopReader{track: track},
		getVolume: m.volumeValue,
	})
	m.player.Play()
	DebugLogf("music start path=%s rate=%d", m.path, track.SampleRate())
}

func (m *MusicPlayer) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.player != nil {
		m.player.Pause()
	}
}

func (m *MusicPlayer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.player != nil {
		m.player.Pause()
		m.player = nil
	}
}

func (m *MusicPlayer) volumeValue() float64 {
	m.mu.Lock()
	volume := m.volume
	m.mu.Unlock()
	return volume
}

func openTrack(path string) (*mp3.Decoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track: %w", err)
	}
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode track %s: %w", path, err)
	}
	return dec, nil
}

// loopReader rewinds the track whenever it runs out.
type loopReader struct {
	track io.ReadSeeker
}

func (l *loopReader) Read(p []byte) (int, error) {
	n, err := l.track.Read(p)
	if !errors.Is(err, io.EOF) {
		return n, err
	}
	if _, serr := l.track.Seek(0, io.SeekStart); serr != nil {
		return n, serr
	}
	if n > 0 {
		return n, nil
	}
	return l.track.Read(p)
}

type volumeReader struct {
	reader    io.Reader
	getVolume func() float64
}

func (v *volumeReader) Read(p []byte) (int, error) {
	n, err := v.reader.Read(p)
	volume := clampVolume(v.getVolume())
	if volume >= 0.999 {
		return n, err
	}
	for i := 0; i+1 < n; i += 2 {
		sample := int16(binary.LittleEndian.Uint16(p[i:]))
		scaled := int16(float64(sample) * volume)
		binary.LittleEndian.PutUint16(p[i:], uint16(scaled))
	}
	return n, err
}
