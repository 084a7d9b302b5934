package phase

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.dedis.ch/onet/v3/log"
)

// CandidateSet holds reference-haplotype indices in ascending order. The
// lowest index doubles as the canonical representative.
type CandidateSet []int

func (cs CandidateSet) Rep() int {
	return cs[0]
}

func (cs CandidateSet) Contains(h int) bool {
	lo, hi := 0, len(cs)
	for lo < hi {
		mid := (lo + hi) / 2
		if cs[mid] < h {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(cs) && cs[lo] == h
}

// intersect merges two ascending index lists.
func intersect(a, b CandidateSet) CandidateSet {
	var out CandidateSet
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// unionSorted merges an ascending list into an ascending accumulator.
func unionSorted(a CandidateSet, b []int) CandidateSet {
	if a == nil {
		return append(CandidateSet(nil), b...)
	}
	out := make(CandidateSet, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// Segment is one piece of a chromosome copy's mosaic: a half-open
// reference-marker range, the candidate reference haplotypes consistent
// with it, and the canonical representative (lowest candidate index).
type Segment struct {
	StartRef   int
	EndRef     int
	Rep        int
	Candidates CandidateSet
}

// Mosaic is the phased reconstruction of one sample: for each chromosome
// copy, an ordered sequence of segments covering every reference marker.
// New segments start only at located breakpoints.
type Mosaic struct {
	Copies [2][]Segment
}

// NumBreakpoints counts segment boundaries interior to the reference
// range, over both copies.
func (ms *Mosaic) NumBreakpoints() int {
	n := 0
	for c := 0; c < 2; c++ {
		if len(ms.Copies[c]) > 0 {
			n += len(ms.Copies[c]) - 1
		}
	}
	return n
}

// SaveMosaicsToFile writes one line per segment:
// sample,copy,start,end,representative,candidate count.
func SaveMosaicsToFile(mosaics []*Mosaic, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	for i, ms := range mosaics {
		if ms == nil {
			f.WriteString(strconv.Itoa(i) + ",excluded\n")
			continue
		}
		for c := 0; c < 2; c++ {
			for _, seg := range ms.Copies[c] {
				line := []string{
					strconv.Itoa(i),
					strconv.Itoa(c),
					strconv.Itoa(seg.StartRef),
					strconv.Itoa(seg.EndRef),
					strconv.Itoa(seg.Rep),
					strconv.Itoa(len(seg.Candidates)),
				}
				f.WriteString(strings.Join(line, ",") + "\n")
			}
		}
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", filename, err)
	}
	log.LLvl1("Saved mosaics to", filename)
	return nil
}
