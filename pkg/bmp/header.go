package bmp

import (
	"encoding/binary"
	"fmt"
)

var endianess = binary.LittleEndian

const (
	// FileHeaderLen is the size of the BITMAPFILEHEADER record.
	FileHeaderLen = 14
	// InfoHeaderLen is the size of the BITMAPINFOHEADER record.
	InfoHeaderLen = 40
	// HeaderLen is the offset of the first byte after both headers.
	HeaderLen = FileHeaderLen + InfoHeaderLen

	bytesPerPixel = 3
)

// Signature is the magic number at the start of every bitmap file.
var Signature = [2]byte{'B', 'M'}

// FileHeader contains information about the type, size and layout of a
// bitmap file.
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type FileHeader struct {
	Type      [2]byte // must be "BM"
	Size      uint32  // size of the whole file in bytes
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32 // offset of the pixel array from the start of the file
}

// InfoHeader contains the dimensions and color format of the bitmap.
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapinfoheader
type InfoHeader struct {
	Size          uint32 // size of this record
	Width         int32
	Height        int32 // negative for top-down row order
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32 // size of the pixel array in bytes, may be 0
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// MarshalBinary returns the 14 byte on-disk representation.
func (h *FileHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, FileHeaderLen)
	b[0] = h.Type[0]
	b[1] = h.Type[1]
	endianess.PutUint32(b[2:6], h.Size)
	endianess.PutUint16(b[6:8], h.Reserved1)
	endianess.PutUint16(b[8:10], h.Reserved2)
	endianess.PutUint32(b[10:14], h.OffBits)
	return b, nil
}

// UnmarshalBinary reads the header from exactly 14 bytes.
func (h *FileHeader) UnmarshalBinary(b []byte) error {
	if len(b) != FileHeaderLen {
		return fmt.Errorf("file header must be %d bytes, got %d", FileHeaderLen, len(b))
	}
	h.Type[0] = b[0]
	h.Type[1] = b[1]
	h.Size = endianess.Uint32(b[2:6])
	h.Reserved1 = endianess.Uint16(b[6:8])
	h.Reserved2 = endianess.Uint16(b[8:10])
	h.OffBits = endianess.Uint32(b[10:14])
	return nil
}

// MarshalBinary returns the 40 byte on-disk representation.
func (h *InfoHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, InfoHeaderLen)
	endianess.PutUint32(b[0:4], h.Size)
	endianess.PutUint32(b[4:8], uint32(h.Width))
	endianess.PutUint32(b[8:12], uint32(h.Height))
	endianess.PutUint16(b[12:14], h.Planes)
	endianess.PutUint16(b[14:16], h.BitCount)
	endianess.PutUint32(b[16:20], h.Compression)
	endianess.PutUint32(b[20:24], h.SizeImage)
	endianess.PutUint32(b[24:28], uint32(h.XPelsPerMeter))
	endianess.PutUint32(b[28:32], uint32(h.YPelsPerMeter))
	endianess.PutUint32(b[32:36], h.ClrUsed)
	endianess.PutUint32(b[36:40], h.ClrImportant)
	return b, nil
}

// UnmarshalBinary reads the header from exactly 40 bytes.
func (h *InfoHeader) UnmarshalBinary(b []byte) error {
	if len(b) != InfoHeaderLen {
		return fmt.Errorf("info header must be %d bytes, got %d", InfoHeaderLen, len(b))
	}
	h.Size = endianess.Uint32(b[0:4])
	h.Width = int32(endianess.Uint32(b[4:8]))
	h.Height = int32(endianess.Uint32(b[8:12]))
	h.Planes = endianess.Uint16(b[12:14])
	h.BitCount = endianess.Uint16(b[14:16])
	h.Compression = endianess.Uint32(b[16:20])
	h.SizeImage = endianess.Uint32(b[20:24])
	h.XPelsPerMeter = int32(endianess.Uint32(b[24:28]))
	h.YPelsPerMeter = int32(endianess.Uint32(b[28:32]))
	h.ClrUsed = endianess.Uint32(b[32:36])
	h.ClrImportant = endianess.Uint32(b[36:40])
	return nil
}

// TopDown tells if rows are stored top row first.
func (h *InfoHeader) TopDown() bool {
	return h.Height < 0
}

// Dimensions returns width and absolute height in pixels.
func (h *InfoHeader) Dimensions() (int, int) {
	height := int(h.Height)
	if height < 0 {
		height = -height
	}
	return int(h.Width), height
}
