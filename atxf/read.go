package atxf

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ReadHeader reads and validates an ATXF header from the start of an
// image. It reads exactly HeaderSize bytes.
func ReadHeader(r io.Reader) (*Header, error) {
	h := new(Header)
	if err := binary.Read(r, binary.LittleEndian, h); err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	if h.Magic != Magic {
		return nil, errors.Errorf("bad magic 0x%08x (expected 0x%08x)", h.Magic, Magic)
	}
	if h.Version != Version {
		return nil, errors.Errorf("unsupported version %d (expected %d)", h.Version, Version)
	}
	if h.HeaderSize != HeaderSize {
		return nil, errors.Errorf("bad header size %d (expected %d)", h.HeaderSize, HeaderSize)
	}
	return h, nil
}
