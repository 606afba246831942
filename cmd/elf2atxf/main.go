// Command elf2atxf converts an ELF executable into an ATXF flat binary.
//
// Usage: elf2atxf <input.elf> <output.atxf>
//
// ELF2ATXF_VERBOSE enables debug logging. ELF2ATXF_CODE_BASE overrides
// the default load base assumed for regions missing from the image.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/xyproto/env/v2"

	"atomos.dev/elf2atxf/atxf"
	"atomos.dev/elf2atxf/elfimage"
)

func newLogger() log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if !env.Bool("ELF2ATXF_VERBOSE") {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	return logger
}

func defaultCodeBase(logger log.Logger) uint32 {
	v := env.Str("ELF2ATXF_CODE_BASE")
	if v == "" {
		return atxf.DefaultCodeBase
	}
	base, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		level.Warn(logger).Log("msg", "ignoring ELF2ATXF_CODE_BASE", "value", v, "err", err)
		return atxf.DefaultCodeBase
	}
	return uint32(base)
}

func convert(fs afero.Fs, logger log.Logger, input, output string) error {
	im, err := elfimage.Open(input)
	if err != nil {
		return err
	}
	defer im.Close()

	table := im.Sections()
	entry := im.Entry()
	for name, s := range table {
		level.Debug(logger).Log("msg", "section", "name", name,
			"size", s.Size, "addr", fmt.Sprintf("%#x", s.Addr))
	}
	level.Debug(logger).Log("msg", "entry point", "addr", fmt.Sprintf("%#x", entry))

	prog, err := atxf.Resolve(table, entry, im, defaultCodeBase(logger))
	if err != nil {
		return errors.Wrap(err, input)
	}

	fp, err := fs.Create(output)
	if err != nil {
		return err
	}
	n, err := prog.WriteTo(fp)
	if err != nil {
		fp.Close()
		fs.Remove(output)
		return errors.Wrap(err, output)
	}
	if err := fp.Close(); err != nil {
		fs.Remove(output)
		return err
	}

	l := prog.Layout()
	fmt.Printf("ATXF binary created: %s\n", output)
	fmt.Printf("  Entry offset: %#x\n", l.EntryOffset)
	fmt.Printf("  Text: %d bytes at offset %#x\n", l.TextSize, l.TextOffset)
	fmt.Printf("  Data: %d bytes at offset %#x\n", l.DataSize, l.DataOffset)
	fmt.Printf("  BSS: %d bytes\n", l.BSSSize)
	fmt.Printf("  Total: %d bytes\n", n)
	return nil
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input.elf> <output.atxf>\n", os.Args[0])
		os.Exit(1)
	}
	if err := convert(afero.NewOsFs(), newLogger(), os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
