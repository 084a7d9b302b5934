package panel

// Panel is a reference haplotype panel: R haplotypes over M markers, one
// allele byte per entry, values in {0,1}. Once a phasing run starts the
// panel is shared read-only across all workers.
type Panel struct {
	alleles []uint8
	numHaps int
	numMark int
}

func NewPanel(numHaps, numMarkers int) *Panel {
	return &Panel{
		alleles: make([]uint8, numHaps*numMarkers),
		numHaps: numHaps,
		numMark: numMarkers,
	}
}

// NewPanelFromRows builds a panel from per-haplotype allele rows.
// All rows must have equal length.
func NewPanelFromRows(rows [][]uint8) *Panel {
	if len(rows) == 0 {
		return NewPanel(0, 0)
	}
	p := NewPanel(len(rows), len(rows[0]))
	for h, row := range rows {
		if len(row) != p.numMark {
			panic("panel rows have unequal lengths")
		}
		copy(p.alleles[h*p.numMark:], row)
	}
	return p
}

func (p *Panel) NumHaps() int {
	return p.numHaps
}

func (p *Panel) NumMarkers() int {
	return p.numMark
}

func (p *Panel) At(hap, marker int) uint8 {
	return p.alleles[hap*p.numMark+marker]
}

func (p *Panel) SetAllele(hap, marker int, a uint8) {
	p.alleles[hap*p.numMark+marker] = a
}

// Row returns the allele sequence of one haplotype. The returned slice
// aliases the panel storage and must not be modified.
func (p *Panel) Row(hap int) []uint8 {
	return p.alleles[hap*p.numMark : (hap+1)*p.numMark]
}

// GenotypeMatrix holds diploid genotypes for N samples over M markers,
// entries in {0,1,2}. It is the imputation output type.
type GenotypeMatrix struct {
	data    []uint8
	numSamp int
	numMark int
}

func NewGenotypeMatrix(numSamples, numMarkers int) *GenotypeMatrix {
	return &GenotypeMatrix{
		data:    make([]uint8, numSamples*numMarkers),
		numSamp: numSamples,
		numMark: numMarkers,
	}
}

func (g *GenotypeMatrix) NumSamples() int {
	return g.numSamp
}

func (g *GenotypeMatrix) NumMarkers() int {
	return g.numMark
}

func (g *GenotypeMatrix) At(sample, marker int) uint8 {
	return g.data[sample*g.numMark+marker]
}

func (g *GenotypeMatrix) Set(sample, marker int, v uint8) {
	g.data[sample*g.numMark+marker] = v
}

// Row aliases the sample's genotype row.
func (g *GenotypeMatrix) Row(sample int) []uint8 {
	return g.data[sample*g.numMark : (sample+1)*g.numMark]
}

// Data aliases the full row-major storage.
func (g *GenotypeMatrix) Data() []uint8 {
	return g.data
}
