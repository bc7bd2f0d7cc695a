package common

import (
	"os"
	"path/filepath"
)

const fileMode = 0o644

// FileWriter writes to a temp file next to the target and renames it into
// place on Close with mode 0644. The first write error is kept and later
// writes are no-ops.
type FileWriter struct {
	p    string
	f    *os.File
	werr error
}

func NewFileWriter(p string) (*FileWriter, error) {
	f, err := os.CreateTemp(filepath.Dir(p), filepath.Base(p)+".*")
	if err != nil {
		return nil, err
	}
	return &FileWriter{p: p, f: f}, nil
}

func (fw *FileWriter) Write(b []byte) (int, error) {
	if fw.werr != nil {
		return 0, fw.werr
	}
	var n int
	n, fw.werr = fw.f.Write(b)
	return n, fw.werr
}

// Close renames the temp file to the target path unless a write failed.
func (fw *FileWriter) Close() error {
	defer os.Remove(fw.f.Name()) // no-op on success
	cerr := fw.f.Close()
	if fw.werr != nil {
		return fw.werr
	}
	if cerr != nil {
		return cerr
	}
	if err := os.Chmod(fw.f.Name(), fileMode); err != nil {
		return err
	}
	return os.Rename(fw.f.Name(), fw.p)
}

// Abort discards the temp file.
func (fw *FileWriter) Abort() {
	fw.f.Close()
	os.Remove(fw.f.Name())
}
