//go:build !sd

// Fallback implementation used when stable-diffusion.cpp is not linked.
//
// Instead of failing, generation synthesizes a procedural image derived
// entirely from the prompt, seed, dimensions and step count. The output is
// deterministic: the same inputs always produce bit-identical PNG bytes,
// which preserves the reproducibility contract of the real pipeline and
// lets the full request path run in development and in tests.
//
// Build with the real bindings: CGO_ENABLED=1 go build -tags sd

package sdruntime

import (
	"hash/fnv"
	"math"
	"math/rand"
)

type fallbackModel struct {
	freed bool
}

func loadNativeModel(path string) (nativeModel, error) {
	// The file existence check already happened in LoadModel; the fallback
	// renderer has no weights to parse.
	return &fallbackModel{}, nil
}

func (m *fallbackModel) generate(params GenerateParams) (*GenerateResult, error) {
	if m.freed {
		return nil, ErrModelClosed
	}

	pixels := renderProcedural(params)
	data, err := EncodeToPNG(pixels, params.Width, params.Height)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		ImageData: data,
		Width:     params.Width,
		Height:    params.Height,
		Seed:      params.Seed,
	}, nil
}

func (m *fallbackModel) free() {
	m.freed = true
}

func backendInfoImpl() string {
	return "procedural fallback (stable-diffusion.cpp not linked)"
}

// renderProcedural produces RGBA pixels from overlapping sinusoidal fields
// whose phases and frequencies are drawn from a seeded PRNG. The prompt is
// folded into the seed so distinct prompts yield distinct images.
func renderProcedural(params GenerateParams) []byte {
	h := fnv.New64a()
	h.Write([]byte(params.Prompt))
	h.Write([]byte{0})
	h.Write([]byte(params.NegativePrompt))
	mixed := params.Seed ^ int64(h.Sum64()) ^ int64(params.Steps)<<32

	rng := rand.New(rand.NewSource(mixed))

	// More steps, more layered detail; mirrors how denoising iterations
	// refine the output
	layers := 2 + params.Steps/10
	type field struct {
		fx, fy, phase, weight float64
	}
	channels := make([][]field, 3)
	for c := range channels {
		channels[c] = make([]field, layers)
		for l := range channels[c] {
			channels[c][l] = field{
				fx:     rng.Float64() * 12,
				fy:     rng.Float64() * 12,
				phase:  rng.Float64() * 2 * math.Pi,
				weight: 0.3 + rng.Float64()*0.7,
			}
		}
	}

	w, ht := params.Width, params.Height
	pixels := make([]byte, w*ht*4)
	for y := 0; y < ht; y++ {
		fy := float64(y) / float64(ht)
		for x := 0; x < w; x++ {
			fx := float64(x) / float64(w)
			idx := (y*w + x) * 4
			for c := 0; c < 3; c++ {
				var v, total float64
				for _, f := range channels[c] {
					v += f.weight * math.Sin(fx*f.fx+fy*f.fy+f.phase)
					total += f.weight
				}
				pixels[idx+c] = byte((v/total + 1) * 127.5)
			}
			pixels[idx+3] = 0xFF
		}
	}
	return pixels
}
