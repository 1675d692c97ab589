// SPDX-License-Identifier: MIT

package ccs

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

// Read is one subread. Seq is in template orientation, so reverse reads are
// stored as they appear in an aligned SAM record; Qual, when present, holds
// Phred values in the same orientation.
type Read struct {
	Name    string
	Seq     string
	Qual    []byte
	Reverse bool
}

// Group is the reads of one molecule.
type Group struct {
	ID    string
	Reads []Read
}

// Format names an input layout.
type Format uint8

// Input formats.
const (
	// FormatText is one sequence per line, groups separated by blank lines.
	// Lines starting with '#' are skipped.
	FormatText Format = iota
	FormatSAM
	FormatBAM
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatSAM:
		return "sam"
	case FormatBAM:
		return "bam"
	}

	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ParseFormat maps "text", "sam" or "bam" to a Format. "auto" or "" picks
// by the extension of path.
func ParseFormat(name, path string) (Format, error) {
	switch strings.ToLower(name) {
	case "text", "txt":
		return FormatText, nil
	case "sam":
		return FormatSAM, nil
	case "bam":
		return FormatBAM, nil
	case "auto", "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".sam":
			return FormatSAM, nil
		case ".bam":
			return FormatBAM, nil
		}

		return FormatText, nil
	}

	return FormatText, fmt.Errorf("%w: %q", ErrFormat, name)
}

// ReadGroups parses every group from r.
func ReadGroups(r io.Reader, f Format) ([]Group, error) {
	switch f {
	case FormatText:
		return readText(r)
	case FormatSAM:
		sr, err := sam.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("ccs: sam header: %w", err)
		}

		return readRecords(sr)
	case FormatBAM:
		br, err := bam.NewReader(r, 0)
		if err != nil {
			return nil, fmt.Errorf("ccs: bam header: %w", err)
		}
		defer br.Close()

		return readRecords(br)
	}

	return nil, fmt.Errorf("%w: %v", ErrFormat, f)
}

func readText(r io.Reader) ([]Group, error) {
	var (
		groups []Group
		cur    []Read
	)
	flush := func() {
		if len(cur) == 0 {
			return
		}
		id := fmt.Sprintf("group/%d", len(groups))
		for i := range cur {
			cur[i].Name = fmt.Sprintf("%s/%d", id, i)
		}
		groups = append(groups, Group{ID: id, Reads: cur})
		cur = nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "#"):
		default:
			cur = append(cur, Read{Seq: strings.ToUpper(line)})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ccs: reading text: %w", err)
	}
	flush()

	return groups, nil
}

type recordReader interface {
	Read() (*sam.Record, error)
}

// readRecords groups primary records by molecule, in order of first
// appearance.
func readRecords(rr recordReader) ([]Group, error) {
	var groups []Group
	index := make(map[string]int)
	for {
		rec, err := rr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ccs: reading record: %w", err)
		}
		if rec.Flags&(sam.Secondary|sam.Supplementary) != 0 {
			continue
		}
		key := moleculeKey(rec.Name)
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, Group{ID: key})
		}
		groups[gi].Reads = append(groups[gi].Reads, Read{
			Name:    rec.Name,
			Seq:     strings.ToUpper(string(rec.Seq.Expand())),
			Qual:    quality(rec.Qual),
			Reverse: rec.Flags&sam.Reverse != 0,
		})
	}

	return groups, nil
}

// moleculeKey keeps the movie/hole prefix of a subread name such as
// "movie/42/0_1200"; other names are their own molecule.
func moleculeKey(name string) string {
	parts := strings.SplitN(name, "/", 3)
	if len(parts) < 3 {
		return name
	}

	return parts[0] + "/" + parts[1]
}

// quality drops the 0xff run SAM uses for a missing QUAL.
func quality(q []byte) []byte {
	for _, b := range q {
		if b != 0xff {
			out := make([]byte, len(q))
			copy(out, q)

			return out
		}
	}

	return nil
}
