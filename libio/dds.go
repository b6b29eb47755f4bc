package libio

import (
	"encoding/binary"
	"fmt"
	"io"
)

const ddsMagic = 0x20534444 // "DDS "

const (
	ddsHeaderSize      = 124
	ddsPixelFormatSize = 32

	ddsFlagCaps        = 0x1
	ddsFlagHeight      = 0x2
	ddsFlagWidth       = 0x4
	ddsFlagPixelFormat = 0x1000

	ddsPixelFormatFourCC = 0x4

	ddsCapsTexture = 0x1000
)

// legacy D3D fourCC codes for uncompressed float surfaces
const (
	fourCCR32F          = 114
	fourCCG32R32F       = 115
	fourCCA32B32G32R32F = 116
)

type ddsPixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      uint32
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

type ddsHeader struct {
	Magic             uint32
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       ddsPixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// WriteDDS writes pix as an uncompressed float DDS surface. channels selects
// the pixel format and must be 1, 2 or 4; pix holds channels values per pixel
// in row order.
func WriteDDS(w io.Writer, pix []float32, channels, width, height int) error {
	var fourCC uint32
	switch channels {
	case 1:
		fourCC = fourCCR32F
	case 2:
		fourCC = fourCCG32R32F
	case 4:
		fourCC = fourCCA32B32G32R32F
	default:
		return fmt.Errorf("unsupported channel count %d", channels)
	}

	if len(pix) != channels*width*height {
		return fmt.Errorf("pixel data length %d does not match %dx%dx%d", len(pix), width, height, channels)
	}

	bw := &BinaryWriter{Dst: w, Order: binary.LittleEndian}

	header := ddsHeader{
		Magic:             ddsMagic,
		Size:              ddsHeaderSize,
		Flags:             ddsFlagCaps | ddsFlagHeight | ddsFlagWidth | ddsFlagPixelFormat,
		Height:            uint32(height),
		Width:             uint32(width),
		PitchOrLinearSize: uint32(width * channels * 4),
		PixelFormat: ddsPixelFormat{
			Size:   ddsPixelFormatSize,
			Flags:  ddsPixelFormatFourCC,
			FourCC: fourCC,
		},
		Caps: ddsCapsTexture,
	}
	if !bw.WriteRef(&header) {
		return fmt.Errorf("could not write dds header: %w", bw.Err)
	}
	if !bw.WriteRef(pix) {
		return fmt.Errorf("could not write dds pixels: %w", bw.Err)
	}
	return nil
}
