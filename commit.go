package admixplot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/carbocation/admixplot/admixture"
)

// Output is a fully rendered file waiting to be written.
type Output struct {
	Path string
	Data []byte
}

// CheckOutput confirms that path names a file in an existing directory.
func CheckOutput(path string) error {
	dir := filepath.Dir(path)

	fstat, err := os.Stat(dir)
	if err != nil {
		return &admixture.IOWriteError{Path: path, Err: err}
	}
	if !fstat.IsDir() {
		return &admixture.IOWriteError{Path: path, Err: fmt.Errorf("%s is not a directory", dir)}
	}

	if fstat, err := os.Stat(path); err == nil && fstat.IsDir() {
		return &admixture.IOWriteError{Path: path, Err: fmt.Errorf("destination is a directory")}
	}

	return nil
}

// Commit writes every output or none of them. Each is first written to a
// temporary file beside its destination, and the temporaries are renamed into
// place only once all of them are on disk.
func Commit(outputs ...Output) error {
	temps := make([]string, 0, len(outputs))
	cleanup := func() {
		for _, name := range temps {
			os.Remove(name)
		}
	}

	for _, out := range outputs {
		name, err := writeTemp(out)
		if err != nil {
			cleanup()
			return &admixture.IOWriteError{Path: out.Path, Err: err}
		}
		temps = append(temps, name)
	}

	for i, out := range outputs {
		if err := os.Rename(temps[i], out.Path); err != nil {
			// Take back what was already moved so no partial result remains
			for j := 0; j < i; j++ {
				os.Remove(outputs[j].Path)
			}
			temps = temps[i:]
			cleanup()
			return &admixture.IOWriteError{Path: out.Path, Err: err}
		}
	}

	return nil
}

func writeTemp(out Output) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(out.Path), "."+filepath.Base(out.Path)+".*.tmp")
	if err != nil {
		return "", err
	}

	if _, err := f.Write(out.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	// CreateTemp makes files readable by the owner only
	if err := os.Chmod(f.Name(), 0644); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}
