package panel

// Missing marks an unobserved genotype entry in a target matrix.
const Missing int8 = -1

// Target holds unphased genotypes for N samples at P typed markers,
// entries in {0,1,2,Missing}, together with the mapping from typed-marker
// index to reference-marker index. Consumed read-only by the engine.
type Target struct {
	geno       []int8
	numSamp    int
	numTyped   int
	typedToRef []int
}

func NewTarget(numSamples, numTyped int, typedToRef []int) *Target {
	return &Target{
		geno:       make([]int8, numSamples*numTyped),
		numSamp:    numSamples,
		numTyped:   numTyped,
		typedToRef: typedToRef,
	}
}

func (t *Target) NumSamples() int {
	return t.numSamp
}

func (t *Target) NumTyped() int {
	return t.numTyped
}

// RefIndex maps a typed-marker index to its reference-marker index.
func (t *Target) RefIndex(typed int) int {
	return t.typedToRef[typed]
}

// TypedToRef aliases the full typed-to-reference mapping.
func (t *Target) TypedToRef() []int {
	return t.typedToRef
}

func (t *Target) At(sample, typed int) int8 {
	return t.geno[sample*t.numTyped+typed]
}

func (t *Target) Set(sample, typed int, v int8) {
	t.geno[sample*t.numTyped+typed] = v
}

// Row aliases the sample's genotype row.
func (t *Target) Row(sample int) []int8 {
	return t.geno[sample*t.numTyped : (sample+1)*t.numTyped]
}
