// Command embedbin serializes a file into a Rust constant byte-array
// source declaration for static embedding.
//
// Usage: embedbin <input> <output> <array-name>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"atomos.dev/elf2atxf/embedgen"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input> <output> <array-name>\n", os.Args[0])
		os.Exit(1)
	}
	input, output, name := os.Args[1], os.Args[2], os.Args[3]
	n, err := embedgen.Generate(afero.NewOsFs(), input, output, name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Embedded %d bytes from %s to %s\n", n, input, output)
}
