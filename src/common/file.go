package common

import (
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
)

func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func ReadGzFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gzReader, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gzReader.Close()

	return io.ReadAll(gzReader)
}

func WriteGzFile(path string, data []byte) error {
	fw, err := NewFileWriter(path)
	if err != nil {
		return err
	}
	gz := gzip.NewWriter(fw)
	_, werr := gz.Write(data)
	if cerr := gz.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		fw.Abort()
		return werr
	}
	return fw.Close()
}
