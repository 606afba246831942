// Package embedgen serializes a byte buffer into a Rust constant
// byte-array declaration for static embedding in the kernel build.
package embedgen

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// bytesPerLine is the number of byte literals emitted per data line.
const bytesPerLine = 16

// Write emits a declaration of a constant byte array named arrayName
// holding data, with srcName recorded in the leading comment. The bytes
// are transcribed 1:1 as two-digit hexadecimal literals, bytesPerLine to
// a line. arrayName is assumed to be a valid identifier; it is not
// validated here.
func Write(w io.Writer, srcName, arrayName string, data []byte) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// Auto-generated: Embedded %s\n", srcName)
	fmt.Fprintf(bw, "// Size: %d bytes\n\n", len(data))
	fmt.Fprintf(bw, "pub const %s: &[u8] = &[\n", arrayName)
	for i := 0; i < len(data); i += bytesPerLine {
		end := i + bytesPerLine
		if end > len(data) {
			end = len(data)
		}
		bw.WriteString("    ")
		for j, b := range data[i:end] {
			if j > 0 {
				bw.WriteString(", ")
			}
			fmt.Fprintf(bw, "0x%02x", b)
		}
		bw.WriteString(",\n")
	}
	bw.WriteString("];\n")
	return bw.Flush()
}

// Generate reads the input file and writes its declaration to the output
// file, returning the number of bytes embedded. A partially written
// output is removed on failure.
func Generate(fs afero.Fs, input, output, arrayName string) (int, error) {
	data, err := afero.ReadFile(fs, input)
	if err != nil {
		return 0, err
	}
	fp, err := fs.Create(output)
	if err != nil {
		return 0, err
	}
	if err := Write(fp, filepath.Base(input), arrayName, data); err != nil {
		fp.Close()
		fs.Remove(output)
		return 0, errors.Wrap(err, output)
	}
	if err := fp.Close(); err != nil {
		fs.Remove(output)
		return 0, err
	}
	return len(data), nil
}
