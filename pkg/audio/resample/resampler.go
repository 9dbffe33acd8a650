// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Used to match speech buffers to the output device rate
package resample

import (
	"fmt"

	"github.com/mindspark-ai/mindspark-go/pkg/audio"
)

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	position   float64
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
		position:   0.0,
	}
}

// Resample converts input samples to output sample rate using linear interpolation
// input: interleaved samples at inputRate
// output: interleaved samples at outputRate
func (r *Resampler) Resample(input []float32, output []float32) int {
	if len(input) == 0 {
		return 0
	}

	inputFrames := len(input) / r.channels
	outputFrames := len(output) / r.channels

	outIdx := 0

	for outIdx < outputFrames {
		inputPos := r.position
		inputIdx := int(inputPos)

		// Need two input frames to interpolate
		if inputIdx >= inputFrames-1 {
			break
		}

		frac := inputPos - float64(inputIdx)

		for ch := 0; ch < r.channels; ch++ {
			sample1 := input[inputIdx*r.channels+ch]
			sample2 := input[(inputIdx+1)*r.channels+ch]

			interpolated := float64(sample1)*(1.0-frac) + float64(sample2)*frac
			output[outIdx*r.channels+ch] = float32(interpolated)
		}

		outIdx++
		r.position += r.ratio
	}

	// Keep the fractional part for the next chunk
	r.position -= float64(int(r.position))

	return outIdx * r.channels
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0.0
}

// OutputSamplesNeeded calculates how many output samples will be produced from input samples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	return outputFrames * r.channels
}

// Buffer resamples a whole frame buffer to outputRate. The buffer is
// returned unchanged when the rates already match.
func Buffer(buf *audio.FrameBuffer, outputRate int) (*audio.FrameBuffer, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", audio.ErrInvalidParameter)
	}
	if outputRate <= 0 || buf.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: cannot resample %dHz to %dHz", audio.ErrInvalidParameter, buf.SampleRate, outputRate)
	}
	if buf.SampleRate == outputRate {
		return buf, nil
	}

	out := make([][]float32, buf.Channels())
	for ch, samples := range buf.Data {
		r := New(buf.SampleRate, outputRate, 1)
		resampled := make([]float32, r.OutputSamplesNeeded(len(samples)))
		n := r.Resample(samples, resampled)

		// Hold the last input sample over the tail interpolation cannot reach
		for i := n; i < len(resampled); i++ {
			resampled[i] = samples[len(samples)-1]
		}
		out[ch] = resampled
	}

	return &audio.FrameBuffer{SampleRate: outputRate, Data: out}, nil
}
