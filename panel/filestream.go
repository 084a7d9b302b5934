package panel

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// FileStream reads a row-major binary matrix one row at a time, one byte
// per entry. Haplotype panels store alleles in {0,1}; genotype targets
// store {0,1,2} with 0xFF for a missing entry. Files ending in ".gz" are
// decompressed transparently.
type FileStream struct {
	filename  string
	file      *os.File
	gz        *gzip.Reader
	reader    *bufio.Reader
	numRows   int
	numCols   int
	lineCount int
	buf       []byte
}

func NewFileStream(filename string, numRows, numCols int) *FileStream {
	fs := &FileStream{
		filename: filename,
		numRows:  numRows,
		numCols:  numCols,
		buf:      make([]byte, numCols),
	}
	fs.open()
	return fs
}

func (fs *FileStream) open() {
	file, err := os.Open(fs.filename)
	if err != nil {
		panic(err)
	}
	fs.file = file

	if strings.HasSuffix(fs.filename, ".gz") {
		fs.gz, err = gzip.NewReader(file)
		if err != nil {
			panic(err)
		}
		fs.reader = bufio.NewReader(fs.gz)
	} else {
		fs.reader = bufio.NewReader(file)
	}
	fs.lineCount = 0
}

func (fs *FileStream) Reset() {
	if fs.file != nil {
		if fs.gz != nil {
			fs.gz.Close()
			fs.gz = nil
		}
		fs.file.Close()
	}
	fs.open()
}

func (fs *FileStream) NumRows() int {
	return fs.numRows
}

func (fs *FileStream) NumCols() int {
	return fs.numCols
}

func (fs *FileStream) LineCount() int {
	return fs.lineCount
}

func (fs *FileStream) CheckEOF() bool {
	if fs.lineCount >= fs.numRows {
		if fs.file != nil {
			if fs.gz != nil {
				fs.gz.Close()
				fs.gz = nil
			}
			fs.file.Close()
		}
		fs.file = nil
		fs.reader = nil
		return true
	}
	return false
}

// NextRow returns the next row of raw bytes. The returned slice is reused
// across calls.
func (fs *FileStream) NextRow() []uint8 {
	if fs.CheckEOF() {
		return nil
	}
	if _, err := io.ReadFull(fs.reader, fs.buf); err != nil {
		panic(err)
	}
	fs.lineCount++
	return fs.buf
}

// LoadPanel reads a full haplotype panel into memory.
func LoadPanel(filename string, numHaps, numMarkers int) *Panel {
	fs := NewFileStream(filename, numHaps, numMarkers)
	p := NewPanel(numHaps, numMarkers)
	for h := 0; h < numHaps; h++ {
		copy(p.alleles[h*numMarkers:], fs.NextRow())
	}
	return p
}

// LoadTarget reads a full genotype target into memory, mapping the 0xFF
// sentinel to Missing.
func LoadTarget(filename string, numSamples, numTyped int, typedToRef []int) *Target {
	fs := NewFileStream(filename, numSamples, numTyped)
	t := NewTarget(numSamples, numTyped, typedToRef)
	for i := 0; i < numSamples; i++ {
		row := fs.NextRow()
		dst := t.Row(i)
		for j := range row {
			if row[j] == 0xFF {
				dst[j] = Missing
			} else {
				dst[j] = int8(row[j])
			}
		}
	}
	return t
}

// SaveGenotypeMatrix writes a genotype matrix in the same byte-per-entry
// layout, gzip-compressed when the filename ends in ".gz".
func SaveGenotypeMatrix(g *GenotypeMatrix, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	bufw := bufio.NewWriter(file)
	var w io.Writer = bufw
	var gz *gzip.Writer
	if strings.HasSuffix(filename, ".gz") {
		gz = gzip.NewWriter(bufw)
		w = gz
	}
	if _, err := w.Write(g.Data()); err != nil {
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return err
		}
	}
	if err := bufw.Flush(); err != nil {
		return err
	}
	return file.Close()
}
