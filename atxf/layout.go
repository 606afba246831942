package atxf

import (
	"encoding/binary"
	"io"
)

var zeropage [PageSize]byte

// alignUp rounds x up to the next multiple of the page size.
func alignUp(x uint32) uint32 {
	return (x + PageSize - 1) &^ (PageSize - 1)
}

// A Program is a resolved executable ready to be laid out as an ATXF
// image. It is not mutated after resolution.
type Program struct {
	Entry    uint32 // entry virtual address
	CodeBase uint32 // virtual base address of the code region
	Code     []byte // code region bytes
	Data     []byte // concatenated data region bytes, may be empty
	BSSSize  uint32 // declared zero-fill size
}

// A Layout is the derived placement of a program's regions in the output
// file. It is computed once from a Program and never mutated.
type Layout struct {
	EntryOffset     uint32
	TextOffset      uint32
	TextSize        uint32
	TextSizeAligned uint32
	DataOffset      uint32
	DataSize        uint32
	DataSizeAligned uint32
	BSSSize         uint32
}

// Layout computes the file placement of the program's regions.
//
// The entry offset is entry minus code base in wrapping uint32
// arithmetic: an entry below the code base produces a large offset, not
// an error. The code region's aligned extent is at least one page even
// when it holds no bytes, so DataOffset is always strictly past the
// header page. DataOffset is computed unconditionally, even when no data
// bytes follow it in the file.
func (p *Program) Layout() Layout {
	l := Layout{
		EntryOffset: p.Entry - p.CodeBase,
		TextOffset:  PageSize,
		TextSize:    uint32(len(p.Code)),
		DataSize:    uint32(len(p.Data)),
		BSSSize:     p.BSSSize,
	}
	l.TextSizeAligned = alignUp(l.TextSize)
	if l.TextSizeAligned == 0 {
		l.TextSizeAligned = PageSize
	}
	l.DataOffset = l.TextOffset + l.TextSizeAligned
	if l.DataSize > 0 {
		l.DataSizeAligned = alignUp(l.DataSize)
	}
	return l
}

// Header projects the layout into the on-disk header record.
func (l Layout) Header() Header {
	return Header{
		Magic:       Magic,
		Version:     Version,
		HeaderSize:  HeaderSize,
		EntryOffset: l.EntryOffset,
		TextOffset:  l.TextOffset,
		TextSize:    l.TextSize,
		DataOffset:  l.DataOffset,
		DataSize:    l.DataSize,
		BSSSize:     l.BSSSize,
	}
}

// FileSize returns the total byte size of the encoded image.
func (l Layout) FileSize() int64 {
	return int64(PageSize) + int64(l.TextSizeAligned) + int64(l.DataSizeAligned)
}

// marshal encodes the header into its 32-byte wire form.
func (h Header) marshal() [HeaderSize]byte {
	var b [HeaderSize]byte
	le := binary.LittleEndian
	le.PutUint32(b[0:], h.Magic)
	le.PutUint16(b[4:], h.Version)
	le.PutUint16(b[6:], h.HeaderSize)
	le.PutUint32(b[8:], h.EntryOffset)
	le.PutUint32(b[12:], h.TextOffset)
	le.PutUint32(b[16:], h.TextSize)
	le.PutUint32(b[20:], h.DataOffset)
	le.PutUint32(b[24:], h.DataSize)
	le.PutUint32(b[28:], h.BSSSize)
	return b
}

// =================================================================================================

// dumpBlocks assembles the image as a list of byte blocks: the header
// padded to one page, the code region padded to its aligned extent, and
// the data region padded likewise. A data region with no bytes
// contributes no blocks at all.
func (p *Program) dumpBlocks() [][]byte {
	l := p.Layout()
	h := l.Header().marshal()
	blocks := [][]byte{h[:], zeropage[HeaderSize:]}
	if len(p.Code) > 0 {
		blocks = append(blocks, p.Code)
	}
	if pad := l.TextSizeAligned - l.TextSize; pad > 0 {
		blocks = append(blocks, zeropage[:pad])
	}
	if len(p.Data) > 0 {
		blocks = append(blocks, p.Data)
		if pad := l.DataSizeAligned - l.DataSize; pad > 0 {
			blocks = append(blocks, zeropage[:pad])
		}
	}
	return blocks
}

// WriteTo writes the encoded ATXF image to a writer.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	var amt int64
	for _, d := range p.dumpBlocks() {
		n, err := w.Write(d)
		amt += int64(n)
		if err != nil {
			return amt, err
		}
	}
	return amt, nil
}
