package panel

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/kshedden/gonpy"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// SaveGenotypeMatrixNpy writes an imputed genotype matrix as a uint8 .npy
// array for downstream numpy tooling.
func SaveGenotypeMatrixNpy(g *GenotypeMatrix, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	bufw := bufio.NewWriterSize(file, 1<<20)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return err
	}
	npw.Shape = []int{g.NumSamples(), g.NumMarkers()}
	if err := npw.WriteUint8(g.Data()); err != nil {
		return err
	}
	if err := bufw.Flush(); err != nil {
		return err
	}
	return file.Close()
}

// SavePanelNpy writes a reference panel as a uint8 .npy array.
func SavePanelNpy(p *Panel, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	bufw := bufio.NewWriterSize(file, 1<<20)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return err
	}
	npw.Shape = []int{p.NumHaps(), p.NumMarkers()}
	if err := npw.WriteUint8(p.alleles); err != nil {
		return err
	}
	if err := bufw.Flush(); err != nil {
		return err
	}
	return file.Close()
}

// LoadPanelNpy reads a panel saved by SavePanelNpy.
func LoadPanelNpy(filename string) (*Panel, error) {
	rdr, err := gonpy.NewFileReader(filename)
	if err != nil {
		return nil, err
	}
	if len(rdr.Shape) != 2 {
		return nil, fmt.Errorf("npy panel %s: expected 2 dimensions, got %d", filename, len(rdr.Shape))
	}
	data, err := rdr.GetUint8()
	if err != nil {
		return nil, err
	}
	p := NewPanel(rdr.Shape[0], rdr.Shape[1])
	copy(p.alleles, data)
	return p, nil
}
