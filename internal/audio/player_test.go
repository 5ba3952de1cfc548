package audio

import (
	"math"
	"testing"
)

func TestNoteFreq(t *testing.T) {
	// Index 57 is A4 (midi 69).
	if f := noteFreq(57); math.Abs(f-440.0) > 1e-9 {
		t.Errorf("expected 440 Hz for index 57, got %f", f)
	}
	// One octave down halves the frequency.
	if f := noteFreq(45); math.Abs(f-220.0) > 1e-9 {
		t.Errorf("expected 220 Hz for index 45, got %f", f)
	}
	// Out of range indices clamp instead of exploding.
	if noteFreq(-5) != noteFreq(0) {
		t.Error("negative index should clamp to 0")
	}
	if noteFreq(500) != noteFreq(108) {
		t.Error("oversized index should clamp to the table top")
	}
}

func TestSetSequenceResetsPosition(t *testing.T) {
	p := NewPlayer(140)
	p.SetSequence([]int{0, 1, 1, 2}, 10)
	p.pos = 3
	p.sampleCount = 99

	p.SetSequence([]int{0, 1}, 5)
	if p.pos != 0 || p.sampleCount != 0 {
		t.Errorf("expected playback position reset, got pos=%d count=%d", p.pos, p.sampleCount)
	}
	if len(p.freqs) != 2 {
		t.Errorf("expected 2 notes, got %d", len(p.freqs))
	}
}

func TestTriangleRange(t *testing.T) {
	for phase := 0.0; phase < 3.0; phase += 0.01 {
		v := triangle(phase)
		if v < -1.0 || v > 1.0 {
			t.Fatalf("triangle(%f) = %f out of range", phase, v)
		}
	}
	if triangle(0.5) != 1.0 {
		t.Errorf("expected peak at half phase, got %f", triangle(0.5))
	}
}

func TestEnvelopeEdges(t *testing.T) {
	total := 1000
	if env := envelope(0, total); env != 0.0 {
		t.Errorf("expected silent attack start, got %f", env)
	}
	if env := envelope(total/2, total); env != 1.0 {
		t.Errorf("expected full level mid note, got %f", env)
	}
	if env := envelope(total-1, total); env >= 0.1 {
		t.Errorf("expected near silent release end, got %f", env)
	}
	// Very short notes skip the ramp entirely.
	if env := envelope(0, 10); env != 1.0 {
		t.Errorf("expected no ramp for short note, got %f", env)
	}
}

func TestNonLoopingPlaybackSignalsDone(t *testing.T) {
	p := NewPlayer(6000)
	p.SetSequence([]int{1, 2}, 5)
	p.SetLoop(false)

	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
	for i := 0; i < 4; i++ {
		p.process(out)
	}

	select {
	case <-p.Done():
	default:
		t.Error("expected done after the melody finished")
	}
}

func TestSetSequenceRearmsDone(t *testing.T) {
	p := NewPlayer(6000)
	p.SetSequence([]int{1}, 5)
	p.SetLoop(false)

	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
	p.process(out)
	<-p.Done()

	p.SetSequence([]int{2}, 5)
	select {
	case <-p.Done():
		t.Error("done should be rearmed by a new sequence")
	default:
	}
}

func TestProcessFillsBuffers(t *testing.T) {
	p := NewPlayer(600)
	p.SetSequence([]int{3, 1, 4}, 10)

	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
	p.process(out)

	var sum float64
	for _, v := range out[0] {
		if v < -1.0 || v > 1.0 {
			t.Fatalf("sample %f out of range", v)
		}
		sum += math.Abs(float64(v))
	}
	if sum == 0 {
		t.Error("expected nonzero output for a playing melody")
	}
}
