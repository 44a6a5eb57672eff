package format

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"

	"lfmt/common"
)

// number of bytes enough for any of the signatures we are looking for
const headerSize = 262

func readHeader(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

func isArchiveFile(path string) (bool, error) {
	head, err := readHeader(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// hasExtension checks name against configured list of tree file extensions.
func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return len(ext) > 0 && slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// detectTreeFmt decides on serialization of the document. Well known
// extensions win, otherwise content is sniffed: JSON tree always starts with
// an object, anything else is left to YAML decoder.
func detectTreeFmt(name string, head []byte) common.TreeFmt {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return common.TreeFmtJson
	case ".yaml", ".yml":
		return common.TreeFmtYaml
	}
	head = bytes.TrimLeft(bytes.TrimPrefix(head, bom), " \t\r\n")
	if len(head) > 0 && head[0] == '{' {
		return common.TreeFmtJson
	}
	return common.TreeFmtYaml
}
