// SPDX-License-Identifier: MIT

package ccs

import (
	"fmt"
	"io"
)

// maxQV is the highest quality FASTQ can carry as printable Phred+33.
const maxQV = 93

// WriteFASTQ writes r as one FASTQ record named by its group ID.
// QVs above maxQV are capped.
func WriteFASTQ(w io.Writer, r Result) error {
	qual := make([]byte, len(r.Sequence))
	for i := range qual {
		qv := 0
		if i < len(r.QVs) {
			qv = min(max(r.QVs[i], 0), maxQV)
		}
		qual[i] = byte(qv + 33)
	}
	_, err := fmt.Fprintf(w, "@%s\n%s\n+\n%s\n", r.ID, r.Sequence, qual)

	return err
}
