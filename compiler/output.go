package compiler

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

type outputFile struct {
	name string
	data []byte
}

func outputPath(dir, name string) string {
	return filepath.Join(dir, name)
}

// writeOutputs writes every file to a pending temporary sibling and replaces
// the destinations only once all writes succeeded. A failed write leaves
// every existing output untouched. A failed replace can leave earlier files
// replaced and later ones not.
func writeOutputs(dir string, files []outputFile) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return NewIOError("create directory", dir, err)
	}

	pending := make([]*renameio.PendingFile, 0, len(files))
	defer func() {
		for _, p := range pending {
			_ = p.Cleanup()
		}
	}()

	for _, f := range files {
		dst := outputPath(dir, f.name)
		p, err := renameio.NewPendingFile(dst,
			renameio.WithTempDir(dir),
			renameio.WithStaticPermissions(0644))
		if err != nil {
			return NewIOError("create", dst, err)
		}
		pending = append(pending, p)

		if _, err := p.Write(f.data); err != nil {
			return NewIOError("write", dst, err)
		}
	}

	for i, p := range pending {
		dst := outputPath(dir, files[i].name)
		if err := p.CloseAtomicallyReplace(); err != nil {
			return NewIOError("replace", dst, err)
		}
	}
	return nil
}
