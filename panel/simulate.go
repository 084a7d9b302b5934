package panel

import (
	"github.com/aead/chacha20/chacha"
	"github.com/hhcho/frand"
)

const prgBufferSize int = 1024

// SimParams controls synthetic data generation. Targets are drawn as
// diploid mosaics of panel haplotypes: each chromosome copy follows one
// reference haplotype and switches to a new one with SwitchRate per typed
// marker. Entries are masked as missing with MissingRate.
type SimParams struct {
	NumHaps     int
	NumMarkers  int
	NumSamples  int
	NumTyped    int
	MAF         float64
	SwitchRate  float64
	MissingRate float64
	Seed        uint64
}

// SimTruth records the generating haplotypes behind a simulated target:
// per sample, per chromosome copy, the source reference-haplotype index at
// every typed marker, and the typed-marker offsets where a switch occurred.
type SimTruth struct {
	Sources  [][2][]int
	Switches [][]int
}

func newSimPRG(seed uint64) *frand.RNG {
	buf := make([]byte, chacha.KeySize)
	for i := 0; i < 8; i++ {
		buf[i] = byte(seed >> (8 * i))
	}
	return frand.NewCustom(buf, prgBufferSize, 20)
}

// Simulate generates a reference panel, a typed-marker target matrix and
// the generating truth, all deterministically from the seed.
func Simulate(sp SimParams) (*Panel, *Target, *SimTruth) {
	prg := newSimPRG(sp.Seed)

	p := NewPanel(sp.NumHaps, sp.NumMarkers)
	freqs := make([]float64, sp.NumMarkers)
	for m := range freqs {
		freqs[m] = sp.MAF + (0.5-sp.MAF)*prg.Float64()
	}
	for h := 0; h < sp.NumHaps; h++ {
		for m := 0; m < sp.NumMarkers; m++ {
			if prg.Float64() < freqs[m] {
				p.SetAllele(h, m, 1)
			}
		}
	}

	// Typed markers evenly spread over the reference set
	typedToRef := make([]int, sp.NumTyped)
	for j := 0; j < sp.NumTyped; j++ {
		typedToRef[j] = j * sp.NumMarkers / sp.NumTyped
	}

	t := NewTarget(sp.NumSamples, sp.NumTyped, typedToRef)
	truth := &SimTruth{
		Sources:  make([][2][]int, sp.NumSamples),
		Switches: make([][]int, sp.NumSamples),
	}

	for i := 0; i < sp.NumSamples; i++ {
		var src [2][]int
		for c := 0; c < 2; c++ {
			src[c] = make([]int, sp.NumTyped)
			hap := prg.Intn(sp.NumHaps)
			for j := 0; j < sp.NumTyped; j++ {
				if j > 0 && prg.Float64() < sp.SwitchRate {
					next := prg.Intn(sp.NumHaps - 1)
					if next >= hap {
						next++
					}
					hap = next
					truth.Switches[i] = append(truth.Switches[i], j)
				}
				src[c][j] = hap
			}
		}
		truth.Sources[i] = src

		row := t.Row(i)
		for j := 0; j < sp.NumTyped; j++ {
			ref := typedToRef[j]
			g := int8(p.At(src[0][j], ref) + p.At(src[1][j], ref))
			if prg.Float64() < sp.MissingRate {
				g = Missing
			}
			row[j] = g
		}
	}

	return p, t, truth
}
