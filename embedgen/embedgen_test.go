package embedgen_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atomos.dev/elf2atxf/embedgen"
)

// brokenFs hands out files whose writes fail, as a full disk would.
type brokenFs struct {
	afero.Fs
}

func (fs *brokenFs) Create(name string) (afero.File, error) {
	fp, err := fs.Fs.Create(name)
	if err != nil {
		return nil, err
	}
	return &brokenFile{File: fp}, nil
}

type brokenFile struct {
	afero.File
}

func (f *brokenFile) Write(p []byte) (int, error) {
	return 0, errors.New("no space left on device")
}

func TestWriteTwentyBytes(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}
	var buf bytes.Buffer
	require.NoError(t, embedgen.Write(&buf, "blob.bin", "BLOB", data))

	want := `// Auto-generated: Embedded blob.bin
// Size: 20 bytes

pub const BLOB: &[u8] = &[
    0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
    0x10, 0x11, 0x12, 0x13,
];
`
	assert.Equal(t, want, buf.String())

	// Exactly two data lines: sixteen bytes, then four.
	var dataLines int
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "    0x") {
			dataLines++
		}
	}
	assert.Equal(t, 2, dataLines)
}

func TestWriteEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, embedgen.Write(&buf, "empty", "EMPTY", nil))
	want := `// Auto-generated: Embedded empty
// Size: 0 bytes

pub const EMPTY: &[u8] = &[
];
`
	assert.Equal(t, want, buf.String())
}

func TestWriteExactLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, embedgen.Write(&buf, "x", "X", bytes.Repeat([]byte{0xff}, 16)))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// comment, comment, blank, open, one data line, close
	require.Len(t, lines, 6)
	assert.Equal(t, strings.Repeat("0xff, ", 15)+"0xff,", strings.TrimSpace(lines[4]))
}

func TestGenerate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in/font.bin", []byte{1, 2, 3}, 0o644))

	n, err := embedgen.Generate(fs, "/in/font.bin", "/out/font.rs", "FONT_DATA")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	out, err := afero.ReadFile(fs, "/out/font.rs")
	require.NoError(t, err)
	assert.Contains(t, string(out), "// Auto-generated: Embedded font.bin")
	assert.Contains(t, string(out), "pub const FONT_DATA: &[u8] = &[")
	assert.Contains(t, string(out), "    0x01, 0x02, 0x03,\n")
}

func TestGenerateWriteFailureRemovesOutput(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/in/font.bin", []byte{1, 2, 3}, 0o644))

	fs := &brokenFs{Fs: mem}
	_, err := embedgen.Generate(fs, "/in/font.bin", "/out/font.rs", "FONT_DATA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no space left")

	exists, _ := afero.Exists(mem, "/out/font.rs")
	assert.False(t, exists, "partial output must be removed")
}

func TestGenerateMissingInput(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := embedgen.Generate(fs, "/nope", "/out.rs", "X")
	require.Error(t, err)
	exists, _ := afero.Exists(fs, "/out.rs")
	assert.False(t, exists, "no output on failure")
}
