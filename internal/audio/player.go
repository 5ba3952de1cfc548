// Package audio plays a Pisano period as a melody through portaudio,
// using the same pitch mapping the LilyPond export writes down.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/arthur-stammet/Pisano-Visualizer/internal/score"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Player sequences one frequency per period value and loops. The
// synthesis chain is a detuned triangle pair into a one pole LPF into
// a stereo delay, which keeps the short notes from clicking.
type Player struct {
	Stream *portaudio.Stream

	mu    sync.Mutex
	freqs []float64
	loop  bool
	done  chan struct{}

	pos            int
	samplesPerNote int
	sampleCount    int

	Time        float64
	FilterState [2]float64
	DelayLine   [2][]float64
	DelayHead   int

	Active bool
}

// NewPlayer sets up a player at the given tempo in notes per minute.
func NewPlayer(tempo int) *Player {
	if tempo < 1 {
		tempo = 1
	}
	delayLen := int(float64(SampleRate) * 0.3)

	return &Player{
		samplesPerNote: SampleRate * 60 / tempo,
		loop:           true,
		done:           make(chan struct{}),
		DelayLine:      [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// SetLoop controls whether playback wraps around at the end of the
// period. With looping off, Done is closed when the last note ends.
func (p *Player) SetLoop(loop bool) {
	p.mu.Lock()
	p.loop = loop
	p.mu.Unlock()
}

// Done reports the end of a non-looping playback.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// SetSequence swaps in a new melody, mapping each value to the same
// pitch the score export would print. Safe to call while playing.
func (p *Player) SetSequence(seq []int, m int) {
	t := score.Transposition(m)
	freqs := make([]float64, len(seq))
	for i, v := range seq {
		freqs[i] = noteFreq(v + t)
	}

	p.mu.Lock()
	p.freqs = freqs
	p.pos = 0
	p.sampleCount = 0
	select {
	case <-p.done:
		p.done = make(chan struct{})
	default:
	}
	p.mu.Unlock()
}

// noteFreq converts a note table index to Hz. Index 0 is C0.
func noteFreq(idx int) float64 {
	if idx < 0 {
		idx = 0
	}
	if idx > score.MaxNoteIndex {
		idx = score.MaxNoteIndex
	}
	midi := float64(idx + 12)
	return 440.0 * math.Pow(2, (midi-69.0)/12.0)
}

func (p *Player) Start() error {
	if p.Active {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, p.process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	p.Stream = stream
	p.Active = true
	return nil
}

func (p *Player) Stop() {
	if !p.Active {
		return
	}
	if p.Stream != nil {
		p.Stream.Stop()
		p.Stream.Close()
		p.Stream = nil
	}
	portaudio.Terminate()
	p.Active = false
}

// Toggle starts playback if stopped and stops it if running.
func (p *Player) Toggle() error {
	if p.Active {
		p.Stop()
		return nil
	}
	return p.Start()
}

func triangle(phase float64) float64 {
	f := phase - math.Floor(phase)
	return 4.0*math.Abs(f-0.5) - 1.0
}

func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (p *Player) process(out [][]float32) {
	p.mu.Lock()
	freqs := p.freqs
	loop := p.loop
	p.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	vol := 0.25

	for i := 0; i < len(out[0]); i++ {
		sampleL, sampleR := 0.0, 0.0

		if len(freqs) > 0 && p.pos < len(freqs) {
			f := freqs[p.pos]

			// Linear attack and release so note edges do not click.
			env := envelope(p.sampleCount, p.samplesPerNote)

			sampleL = triangle(p.Time*(f*0.999)) * env
			sampleR = triangle(p.Time*(f*1.001)) * env

			p.sampleCount++
			if p.sampleCount >= p.samplesPerNote {
				p.sampleCount = 0
				p.pos++
				if p.pos >= len(freqs) {
					if loop {
						p.pos = 0
					} else {
						p.signalDone()
					}
				}
			}
		}

		var outL, outR float64
		outL, p.FilterState[0] = lpf(sampleL, 2500.0, dt, p.FilterState[0])
		outR, p.FilterState[1] = lpf(sampleR, 2500.0, dt, p.FilterState[1])

		delayL := p.DelayLine[0][p.DelayHead]
		delayR := p.DelayLine[1][p.DelayHead]

		mixL := outL + delayL*0.25 + delayR*0.05
		mixR := outR + delayR*0.25 + delayL*0.05

		p.DelayLine[0][p.DelayHead] = mixL * 0.5
		p.DelayLine[1][p.DelayHead] = mixR * 0.5
		p.DelayHead = (p.DelayHead + 1) % len(p.DelayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		p.Time += dt
	}
}

func (p *Player) signalDone() {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.done:
	default:
		close(p.done)
	}
}

// envelope ramps over the first and last 5% of each note.
func envelope(sample, total int) float64 {
	ramp := total / 20
	if ramp < 1 {
		return 1.0
	}
	if sample < ramp {
		return float64(sample) / float64(ramp)
	}
	if rem := total - sample; rem < ramp {
		return float64(rem) / float64(ramp)
	}
	return 1.0
}
