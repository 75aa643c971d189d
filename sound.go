package main

import (
	"bytes"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/KaiqueGovani/legotris/pkg/engine"
)

type SoundEvent int

const (
	SoundLock SoundEvent = iota
	SoundLine1
	SoundLine2
	SoundLine3
	SoundLine4
	SoundRotate
	SoundMove
	SoundDrop
	SoundLevelUp
	SoundMenuMove
	SoundMenuSelect
	SoundGameOver
)

// SoundEngine synthesizes short tones on the shared audio context.
type SoundEngine struct {
	mu         sync.RWMutex
	ctx        *oto.Context
	sampleRate int
	enabled    bool
	volume     float64
}

func NewSoundEngine(ctx *oto.Context, sampleRate int, enabled bool) *SoundEngine {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	return &SoundEngine{
		ctx:        ctx,
		sampleRate: sampleRate,
		enabled:    enabled && ctx != nil,
		volume:     0.7,
	}
}

func (s *SoundEngine) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled && s.ctx != nil
	s.mu.Unlock()
}

func (s *SoundEngine) SetVolume(volume float64) {
	s.mu.Lock()
	s.volume = clampVolume(volume)
	s.mu.Unlock()
}

func (s *SoundEngine) Play(event SoundEvent) {
	s.mu.RLock()
	ctx := s.ctx
	enabled := s.enabled
	volume := s.volume
	s.mu.RUnlock()
	if !enabled || ctx == nil {
		return
	}
	sequence := tonesForEvent(event)
	if len(sequence) == 0 {
		return
	}
	go func() {
		buffer := renderToneSequence(sequence, s.sampleRate, volume)
		player := ctx.NewPlayer(bytes.NewReader(buffer))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(5 * time.Millisecond)
		}
		_ = player.Close()
	}()
}

// soundsForEvent picks the cues for an engine event caused by action.
// Ticks pass engine.ActionUnknown.
func soundsForEvent(action engine.Action, ev engine.Event) []SoundEvent {
	var out []SoundEvent
	switch ev.Kind {
	case engine.EventNone:
		return nil
	case engine.EventMoved:
		if action == engine.ActionMoveLeft || action == engine.ActionMoveRight {
			out = append(out, SoundMove)
		}
	case engine.EventRotated:
		out = append(out, SoundRotate)
	case engine.EventLocked, engine.EventGameOver:
		switch {
		case ev.Cleared >= 4:
			out = append(out, SoundLine4)
		case ev.Cleared == 3:
			out = append(out, SoundLine3)
		case ev.Cleared == 2:
			out = append(out, SoundLine2)
		case ev.Cleared == 1:
			out = append(out, SoundLine1)
		case action == engine.ActionHardDrop:
			out = append(out, SoundDrop)
		default:
			out = append(out, SoundLock)
		}
		if ev.LevelUp {
			out = append(out, SoundLevelUp)
		}
	}
	return out
}

type toneSpec struct {
	frequency float64
	duration  time.Duration
	volume    float64
}

func tonesForEvent(event SoundEvent) []toneSpec {
	switch event {
	case SoundLock:
		return []toneSpec{{frequency: 220, duration: 70 * time.Millisecond, volume: 0.3}}
	case SoundLine1:
		return []toneSpec{{frequency: 440, duration: 90 * time.Millisecond, volume: 0.3}}
	case SoundLine2:
		return []toneSpec{
			{frequency: 440, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 660, duration: 90 * time.Millisecond, volume: 0.3},
		}
	case SoundLine3:
		return []toneSpec{
			{frequency: 440, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 660, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 880, duration: 90 * time.Millisecond, volume: 0.3},
		}
	case SoundLine4:
		return []toneSpec{
			{frequency: 660, duration: 80 * time.Millisecond, volume: 0.3},
			{frequency: 880, duration: 80 * time.Millisecond, volume: 0.3},
			{frequency: 990, duration: 120 * time.Millisecond, volume: 0.3},
		}
	case SoundRotate:
		return []toneSpec{{frequency: 520, duration: 40 * time.Millisecond, volume: 0.25}}
	case SoundMove:
		return []toneSpec{{frequency: 380, duration: 25 * time.Millisecond, volume: 0.18}}
	case SoundDrop:
		return []toneSpec{{frequency: 240, duration: 55 * time.Millisecond, volume: 0.22}}
	case SoundLevelUp:
		return []toneSpec{
			{frequency: 523, duration: 60 * time.Millisecond, volume: 0.25},
			{frequency: 659, duration: 60 * time.Millisecond, volume: 0.25},
			{frequency: 784, duration: 60 * time.Millisecond, volume: 0.25},
			{frequency: 1047, duration: 140 * time.Millisecond, volume: 0.25},
		}
	case SoundMenuMove:
		return []toneSpec{{frequency: 260, duration: 24 * time.Millisecond, volume: 0.16}}
	case SoundMenuSelect:
		return []toneSpec{{frequency: 520, duration: 70 * time.Millisecond, volume: 0.2}}
	case SoundGameOver:
		return []toneSpec{
			{frequency: 260, duration: 120 * time.Millisecond, volume: 0.28},
			{frequency: 180, duration: 240 * time.Millisecond, volume: 0.28},
		}
	default:
		return nil
	}
}

// renderToneSequence renders 16-bit stereo PCM with 10ms of silence between
// tones.
func renderToneSequence(sequence []toneSpec, sampleRate int, masterVolume float64) []byte {
	const bytesPerFrame = 4
	gapSamples := sampleRate / 100
	total := 0
	for i, spec := range sequence {
		total += samplesFor(spec.duration, sampleRate)
		if i < len(sequence)-1 {
			total += gapSamples
		}
	}
	buffer := make([]byte, total*bytesPerFrame)
	index := 0
	for i, spec := range sequence {
		volume := spec.volume
		if volume <= 0 {
			volume = 0.3
		}
		renderTone(buffer, index, spec, sampleRate, volume*clampVolume(masterVolume))
		index += samplesFor(spec.duration, sampleRate) * bytesPerFrame
		if i < len(sequence)-1 {
			index += gapSamples * bytesPerFrame
		}
	}
	return buffer
}

func samplesFor(d time.Duration, sampleRate int) int {
	return int(float64(sampleRate) * d.Seconds())
}

func renderTone(buffer []byte, start int, spec toneSpec, sampleRate int, volume float64) {
	const maxInt16 = 1<<15 - 1
	samples := samplesFor(spec.duration, sampleRate)
	fade := int(float64(sampleRate) * 0.003)
	for i := 0; i < samples; i++ {
		env := 1.0
		if fade > 0 {
			if i < fade {
				env = float64(i) / float64(fade)
			} else if i > samples-fade {
				env = math.Max(0, float64(samples-i)/float64(fade))
			}
		}
		sample := math.Sin(2 * math.Pi * spec.frequency * float64(i) / float64(sampleRate))
		value := int16(sample * volume * env * maxInt16)
		buffer[start+i*4] = byte(value)
		buffer[start+i*4+1] = byte(value >> 8)
		buffer[start+i*4+2] = byte(value)
		buffer[start+i*4+3] = byte(value >> 8)
	}
}

func clampVolume(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
