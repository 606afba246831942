package atxf

import (
	"github.com/pkg/errors"
)

// dataRegions are the data-class region names in concatenation order.
var dataRegions = [...]string{RegionROData, RegionGOT}

// lookup returns the named section, or a zero-size section at the given
// base address when the table is missing the name.
func (t SectionTable) lookup(name string, base uint32) Section {
	if s, ok := t[name]; ok {
		return s
	}
	return Section{Size: 0, Addr: base}
}

// Resolve selects the regions relevant to ATXF layout from a section
// table and extracts their bytes.
//
// The selection policy is fixed: "code" supplies the code region;
// "rodata" then "got", when present, are concatenated in that order into
// the data region; "bss" supplies the zero-fill size. A missing name
// defaults to size zero at defaultBase and is never an error. The
// extractor runs once per class with a non-zero combined size; an
// extraction failure aborts resolution.
func Resolve(table SectionTable, entry uint32, x Extractor, defaultBase uint32) (*Program, error) {
	code := table.lookup(RegionCode, defaultBase)
	p := &Program{
		Entry:    entry,
		CodeBase: code.Addr,
		BSSSize:  table.lookup(RegionBSS, defaultBase).Size,
	}

	if code.Size > 0 {
		b, err := x.Extract([]string{RegionCode})
		if err != nil {
			return nil, errors.Wrap(err, "extracting code region")
		}
		p.Code = b
	}

	var names []string
	var dataSize uint32
	for _, name := range dataRegions {
		if s, ok := table[name]; ok && s.Size > 0 {
			names = append(names, name)
			dataSize += s.Size
		}
	}
	if dataSize > 0 {
		b, err := x.Extract(names)
		if err != nil {
			return nil, errors.Wrap(err, "extracting data regions")
		}
		p.Data = b
	}

	return p, nil
}
