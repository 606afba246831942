// Package elfimage reads section tables, entry addresses, and raw
// region bytes from ELF executables, translating ELF section naming to
// the canonical region names used for ATXF layout.
package elfimage

import (
	"debug/elf"

	"github.com/pkg/errors"

	"atomos.dev/elf2atxf/atxf"
)

// sectionNames maps canonical region names to their ELF section names.
var sectionNames = map[string]string{
	atxf.RegionCode:   ".text",
	atxf.RegionROData: ".rodata",
	atxf.RegionGOT:    ".got",
	atxf.RegionBSS:    ".bss",
}

// An Image is an open ELF executable.
type Image struct {
	name string
	f    *elf.File
}

// Open opens an ELF executable and checks that it is something an ATXF
// loader could run: little-endian, 64-bit, statically linked x86-64.
func Open(name string) (*Image, error) {
	f, err := elf.Open(name)
	if err != nil {
		return nil, err
	}
	if err := check(f); err != nil {
		f.Close()
		return nil, errors.Wrap(err, name)
	}
	return &Image{name: name, f: f}, nil
}

func check(f *elf.File) error {
	if f.Class != elf.ELFCLASS64 {
		return errors.Errorf("ELF has class %s, expected ELFCLASS64", f.Class)
	}
	if f.Data != elf.ELFDATA2LSB {
		return errors.Errorf("ELF has data %s, expected ELFDATA2LSB", f.Data)
	}
	if f.Type != elf.ET_EXEC {
		return errors.Errorf("ELF has type %s, expected ET_EXEC", f.Type)
	}
	if f.Machine != elf.EM_X86_64 {
		return errors.Errorf("ELF has machine %s, expected EM_X86_64", f.Machine)
	}
	return nil
}

// Close closes the underlying file.
func (im *Image) Close() error {
	return im.f.Close()
}

// Entry returns the program entry address.
func (im *Image) Entry() uint32 {
	return uint32(im.f.Entry)
}

// Sections returns the table of allocatable regions relevant to ATXF
// layout, keyed by canonical region name. Regions absent from the image
// are absent from the table.
func (im *Image) Sections() atxf.SectionTable {
	t := make(atxf.SectionTable)
	for region, elfName := range sectionNames {
		s := im.f.Section(elfName)
		if s == nil || s.Flags&elf.SHF_ALLOC == 0 {
			continue
		}
		t[region] = atxf.Section{Size: uint32(s.Size), Addr: uint32(s.Addr)}
	}
	return t
}

// Extract reads the named regions' contents from the image and
// concatenates them in the order given. A region that is absent, or that
// occupies no file bytes, is an error.
func (im *Image) Extract(names []string) ([]byte, error) {
	var buf []byte
	for _, name := range names {
		elfName, ok := sectionNames[name]
		if !ok {
			return nil, errors.Errorf("unknown region %q", name)
		}
		s := im.f.Section(elfName)
		if s == nil {
			return nil, errors.Errorf("%s: section %q not present", im.name, elfName)
		}
		if s.Type == elf.SHT_NOBITS {
			return nil, errors.Errorf("%s: section %q has no file contents", im.name, elfName)
		}
		d, err := s.Data()
		if err != nil {
			return nil, errors.Wrapf(err, "%s: section %q", im.name, elfName)
		}
		buf = append(buf, d...)
	}
	return buf, nil
}
