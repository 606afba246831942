// Package atxf builds ATXF (Atom eXecutable Format) flat binary images.
//
// An ATXF image is a fixed 32-byte little-endian header followed by the
// program's code and data regions, each starting on a 4 KiB page boundary.
// The loader maps the regions directly; there is no relocation or symbol
// information in the file.
package atxf

// Format constants. The header always declares HeaderSize bytes and the
// rest of the first page is zero.
const (
	// Magic identifies an ATXF image (the bytes "ATXF" read big-endian).
	Magic uint32 = 0x41545846
	// Version is the current format version.
	Version uint16 = 1
	// HeaderSize is the byte size of the on-disk header.
	HeaderSize uint16 = 32
)

const (
	pageBits = 12
	// PageSize is the alignment unit for all file-resident regions.
	PageSize = 1 << pageBits
)

// DefaultCodeBase is the conventional load address of the code region,
// used for regions missing from a section table.
const DefaultCodeBase uint32 = 0x400000

// A Header is the on-disk ATXF header. All fields are little-endian.
//
// DataOffset is computed and stored even when DataSize is zero: consumers
// that trust the offset blindly always see a page-aligned value past the
// code region, never garbage. TextSize, DataSize and BSSSize are raw byte
// counts; only file offsets and file-resident extents are page-aligned.
type Header struct {
	Magic       uint32 // format magic
	Version     uint16 // format version
	HeaderSize  uint16 // header byte size
	EntryOffset uint32 // entry address minus code base, wrapped unsigned
	TextOffset  uint32 // file offset of the code region, page-aligned
	TextSize    uint32 // raw code byte count
	DataOffset  uint32 // file offset of the data region, page-aligned
	DataSize    uint32 // raw data byte count, may be zero
	BSSSize     uint32 // declared zero-fill size, no file bytes
}

// A Kind classifies how a region participates in the image layout.
type Kind int

const (
	// KindNone marks a region that does not participate in layout.
	KindNone Kind = iota
	// KindCode is the executable region.
	KindCode
	// KindData is an initialized read-only data region.
	KindData
	// KindZeroFill is a declared-size-only region zeroed by the loader.
	KindZeroFill
)

// Canonical region names in a section table. The selection policy is a
// closed enumeration; unknown names never participate in layout.
const (
	RegionCode   = "code"
	RegionROData = "rodata"
	RegionGOT    = "got"
	RegionBSS    = "bss"
)

// Classify maps a region name to its layout kind.
func Classify(name string) Kind {
	switch name {
	case RegionCode:
		return KindCode
	case RegionROData, RegionGOT:
		return KindData
	case RegionBSS:
		return KindZeroFill
	}
	return KindNone
}

// A Section is one entry in a pre-parsed section table.
type Section struct {
	Size uint32 // byte count
	Addr uint32 // virtual load address of the section's first byte
}

// A SectionTable maps canonical region names to their sizes and load
// addresses. It is produced by an object-format reader; it may be empty
// or missing any name.
type SectionTable map[string]Section

// An Extractor supplies the raw bytes of named regions from the source
// image, concatenated in the order given. It must fail if a named region
// is absent from the image.
type Extractor interface {
	Extract(names []string) ([]byte, error)
}
