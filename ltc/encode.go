package ltc

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"ltcfit/libio"
)

const MagicNumberLTCTAB = 0x4c544331

type TableVersion uint32

const (
	TableVersion1_000_000 = TableVersion(1_000_000)
)

type TableCompression uint32

const (
	TableCompressionNone = TableCompression(iota)
	TableCompressionLZ4Fast
	TableCompressionLZ4
)

// TableHeader prefixes the serialized table. The cell payload that follows is
// twelve little-endian float32 per cell: the column-major matrix, the two
// amplitude components and the fit error.
type TableHeader struct {
	Check       uint32
	Version     TableVersion
	Compression TableCompression
	Resolution  uint32
}

const cellFloats = 12

type EncodeContext struct {
	Compression TableCompression
	Writer      io.Writer
}

type EncodeOption func(ctx *EncodeContext) error

// OptCompress wraps the cell payload in an lz4 stream. Level 0 selects the
// fast encoder, higher levels trade speed for ratio. A negative level is a
// no-op.
func OptCompress(level int) EncodeOption {
	levels := []lz4.CompressionLevel{lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9}
	if level < 0 {
		return nil
	}

	if level >= len(levels) {
		level = len(levels) - 1
	}

	return func(ctx *EncodeContext) error {
		if ctx.Compression != TableCompressionNone {
			return fmt.Errorf("compression already configured")
		}
		lzw := lz4.NewWriter(ctx.Writer)
		lzw.Apply(lz4.CompressionLevelOption(levels[level]))
		if level == 0 {
			ctx.Compression = TableCompressionLZ4Fast
		} else {
			ctx.Compression = TableCompressionLZ4
		}
		ctx.Writer = lzw
		return nil
	}
}

// EncodeTable writes the fitted table so it can be reloaded later without
// refitting. Minimizer iteration counts and convergence flags are run
// diagnostics and are not stored.
func EncodeTable(w io.Writer, tab *Table, options ...EncodeOption) (err error) {
	bw := &libio.BinaryWriter{
		Dst:   w,
		Order: binary.LittleEndian,
	}

	ctx := EncodeContext{
		Writer: w,
	}

	for _, opt := range options {
		if opt != nil {
			if err := opt(&ctx); err != nil {
				return err
			}
		}
	}

	header := TableHeader{
		Check:       MagicNumberLTCTAB,
		Version:     TableVersion1_000_000,
		Compression: ctx.Compression,
		Resolution:  uint32(tab.Resolution),
	}
	if !bw.WriteRef(&header) {
		return fmt.Errorf("could not write table header: %w", bw.Err)
	}

	payload := make([]float32, 0, len(tab.Cells)*cellFloats)
	for i := range tab.Cells {
		c := &tab.Cells[i]
		payload = append(payload, c.Matrix[:]...)
		payload = append(payload, c.Amplitude[0], c.Amplitude[1], c.Error)
	}
	if err := binary.Write(ctx.Writer, binary.LittleEndian, payload); err != nil {
		return fmt.Errorf("could not write table cells: %w", err)
	}

	if closer, ok := (ctx.Writer).(io.WriteCloser); ok {
		return closer.Close()
	}

	return nil
}
