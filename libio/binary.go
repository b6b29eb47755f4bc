// Package libio provides the binary plumbing shared by the table container
// and texture writers.
package libio

import (
	"encoding/binary"
	"io"
)

// BinaryWriter wraps an io.Writer with a byte order and latches the first
// write error, so call sites can chain writes and check once.
type BinaryWriter struct {
	Order binary.ByteOrder
	Dst   io.Writer
	Err   error
}

func (bw *BinaryWriter) Write(p []byte) (n int, err error) {
	return bw.Dst.Write(p)
}

func (bw *BinaryWriter) WriteBytes(p []byte) (ok bool) {
	if bw.Err != nil {
		return false
	}
	if _, err := bw.Dst.Write(p); err != nil {
		bw.Err = err
		return false
	}
	return true
}

// WriteRef writes data in the writer's byte order. data must be a fixed-size
// value or a pointer to one.
func (bw *BinaryWriter) WriteRef(data any) (ok bool) {
	if bw.Err != nil {
		return false
	}
	bw.Err = binary.Write(bw.Dst, bw.Order, data)
	return bw.Err == nil
}

// BinaryReader is the reading counterpart of BinaryWriter.
type BinaryReader struct {
	Order binary.ByteOrder
	Src   io.Reader
	Err   error
}

func (br *BinaryReader) Read(p []byte) (n int, err error) {
	return br.Src.Read(p)
}

// ReadRef reads data in the reader's byte order. data must be a pointer to a
// fixed-size value.
func (br *BinaryReader) ReadRef(data any) (ok bool) {
	if br.Err != nil {
		return false
	}
	br.Err = binary.Read(br.Src, br.Order, data)
	return br.Err == nil
}
