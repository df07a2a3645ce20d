// Package decontam selects host-derived reads out of SAM/BAM alignments.
//
// A read counts as host when it aligned to the host reference well enough:
// it must be mapped, a large enough fraction of it must have aligned, and
// the aligned span must match the reference closely enough. The thresholds
// come from the qc section of the project config (pct_id, frac).
package decontam

import (
	"bufio"
	"fmt"
	"io"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"

	"github.com/ATCHON/sunbeam/pkg/logging"
)

// Filter holds the thresholds a read must clear. Both comparisons are
// strict: a read exactly at a threshold does not pass.
type Filter struct {
	// MinPctID is the minimum identity of the aligned span, where identity
	// is 1 - NM/alen with alen the reference length of the alignment.
	MinPctID float64
	// MinLenFrac is the minimum fraction of the read that aligned,
	// counting soft- and hard-clipped bases against the read.
	MinLenFrac float64
}

// recordReader is satisfied by both sam.Reader and bam.Reader.
type recordReader interface {
	Read() (*sam.Record, error)
}

// Scanner streams the identifiers of reads passing a Filter out of an
// alignment, in input order, one identifier per passing record.
//
//	sc, err := decontam.NewScanner(f, filter)
//	...
//	for sc.Scan() {
//	    fmt.Println(sc.ReadID())
//	}
//	err = sc.Err()
type Scanner struct {
	records recordReader
	filter  Filter
	id      string
	err     error
}

// gzipMagic opens every BGZF block, so it distinguishes BAM from SAM text.
var gzipMagic = [2]byte{0x1f, 0x8b}

// NewScanner wraps an alignment stream. The format is sniffed from the
// first bytes: BGZF-compressed input is read as BAM, anything else as SAM
// text.
func NewScanner(r io.Reader, filter Filter) (*Scanner, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading alignment: %w", err)
	}

	var records recordReader
	if len(magic) == 2 && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		logging.Debug("Decontam", "Reading BAM input")
		records, err = bam.NewReader(br, 0)
	} else {
		logging.Debug("Decontam", "Reading SAM input")
		records, err = sam.NewReader(br)
	}
	if err != nil {
		return nil, fmt.Errorf("opening alignment: %w", err)
	}
	return &Scanner{records: records, filter: filter}, nil
}

// Scan advances to the next passing read. It returns false when the input
// is exhausted or reading fails; Err tells the two apart.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for {
		rec, err := s.records.Read()
		if err != nil {
			if err != io.EOF {
				s.err = fmt.Errorf("reading alignment record: %w", err)
			}
			return false
		}
		if s.filter.passes(rec) {
			s.id = rec.Name
			return true
		}
	}
}

// ReadID returns the identifier of the read Scan last stopped on.
func (s *Scanner) ReadID() string {
	return s.id
}

// Err returns the first error hit while scanning, if any.
func (s *Scanner) Err() error {
	return s.err
}

// MappedReads collects every passing read identifier in r. Duplicate
// identifiers are kept; secondary and supplementary records count like any
// other mapped record.
func MappedReads(r io.Reader, filter Filter) ([]string, error) {
	sc, err := NewScanner(r, filter)
	if err != nil {
		return nil, err
	}
	var ids []string
	for sc.Scan() {
		ids = append(ids, sc.ReadID())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (f Filter) passes(rec *sam.Record) bool {
	if rec.Flags&sam.Unmapped != 0 {
		return false
	}
	frac, ok := alignedFraction(rec)
	if !ok || frac <= f.MinLenFrac {
		return false
	}
	identity, ok := percentIdentity(rec)
	return ok && identity > f.MinPctID
}

// alignedFraction is the aligned part of the read over its full length:
// query-consuming cigar ops outside clips, against those plus soft- and
// hard-clipped bases. Records aligning zero query bases report not-ok.
func alignedFraction(rec *sam.Record) (float64, bool) {
	aligned, clipped := 0, 0
	for _, op := range rec.Cigar {
		switch op.Type() {
		case sam.CigarSoftClipped, sam.CigarHardClipped:
			clipped += op.Len()
		default:
			aligned += op.Len() * op.Type().Consumes().Query
		}
	}
	total := aligned + clipped
	if total == 0 {
		return 0, false
	}
	return float64(aligned) / float64(total), true
}

// percentIdentity is 1 - NM/alen with alen the reference-consuming cigar
// length. A missing NM tag counts as zero mismatches. Records without a
// reference span report not-ok.
func percentIdentity(rec *sam.Record) (float64, bool) {
	alen := 0
	for _, op := range rec.Cigar {
		alen += op.Len() * op.Type().Consumes().Reference
	}
	if alen == 0 {
		return 0, false
	}
	return 1 - float64(editDistance(rec))/float64(alen), true
}

var nmTag = sam.Tag{'N', 'M'}

// editDistance reads the NM aux tag, whatever integer width the encoder
// chose, defaulting to zero when the aligner wrote none.
func editDistance(rec *sam.Record) int {
	aux := rec.AuxFields.Get(nmTag)
	if aux == nil {
		return 0
	}
	switch v := aux.Value().(type) {
	case int:
		return v
	case int8:
		return int(v)
	case uint8:
		return int(v)
	case int16:
		return int(v)
	case uint16:
		return int(v)
	case int32:
		return int(v)
	case uint32:
		return int(v)
	default:
		return 0
	}
}
