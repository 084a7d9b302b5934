package phase

import (
	"golang.org/x/sync/errgroup"

	"github.com/hhcho/winphase/panel"
)

// imputeSample fills one sample's genotype row over every reference
// marker by summing the two copies' panel alleles under the covering
// segments. Segments still holding several candidates use the canonical
// representative (lowest reference index).
func imputeSample(p *panel.Panel, ms *Mosaic, dst []uint8) {
	for m := range dst {
		dst[m] = 0
	}
	for c := 0; c < 2; c++ {
		for _, seg := range ms.Copies[c] {
			hap := p.Row(seg.Rep)
			for m := seg.StartRef; m < seg.EndRef; m++ {
				dst[m] += hap[m]
			}
		}
	}
}

// Impute reconstructs the full N x M genotype matrix from finalized
// mosaics, in parallel across samples. Rows of excluded samples (nil
// mosaic) are left zero; callers distinguish them via Result.Failed.
func Impute(p *panel.Panel, mosaics []*Mosaic, numThreads int) (*panel.GenotypeMatrix, error) {
	n := len(mosaics)
	out := panel.NewGenotypeMatrix(n, p.NumMarkers())

	var g errgroup.Group
	for thread := 0; thread < numThreads; thread++ {
		thread := thread
		g.Go(func() error {
			for i := thread; i < n; i += numThreads {
				if mosaics[i] == nil {
					continue
				}
				imputeSample(p, mosaics[i], out.Row(i))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
