package ltc

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"ltcfit/libio"
)

// DecodeTable reads a table written by EncodeTable.
func DecodeTable(r io.Reader) (*Table, error) {
	br := &libio.BinaryReader{
		Src:   r,
		Order: binary.LittleEndian,
	}

	header := TableHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("could not read table header: %w", br.Err)
	}

	if header.Check != MagicNumberLTCTAB {
		return nil, fmt.Errorf("table header is corrupt")
	}
	if header.Version != TableVersion1_000_000 {
		return nil, fmt.Errorf("table version %d unsupported", header.Version)
	}

	var src io.Reader = r
	switch header.Compression {
	case TableCompressionNone:
	case TableCompressionLZ4Fast, TableCompressionLZ4:
		src = lz4.NewReader(r)
	default:
		return nil, fmt.Errorf("table compression %d unsupported", header.Compression)
	}

	n := int(header.Resolution)
	if n <= 0 {
		return nil, fmt.Errorf("table resolution %d invalid", n)
	}

	payload := make([]float32, n*n*cellFloats)
	if err := binary.Read(src, binary.LittleEndian, payload); err != nil {
		return nil, fmt.Errorf("could not read table cells: %w", err)
	}

	tab := NewTable(n)
	for i := range tab.Cells {
		c := &tab.Cells[i]
		cell := payload[i*cellFloats : (i+1)*cellFloats]
		copy(c.Matrix[:], cell[:9])
		c.Amplitude[0] = cell[9]
		c.Amplitude[1] = cell[10]
		c.Error = cell[11]
	}

	return tab, nil
}
