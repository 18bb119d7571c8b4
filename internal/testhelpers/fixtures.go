package testhelpers

import (
	"os"
	"path/filepath"
)

// LoadFixture reads a file from internal/testhelpers/fixtures. It expects to
// be called from a package directory directly under internal/ or internal/pkg/.
func LoadFixture(name string) ([]byte, error) {
	for _, dir := range []string{filepath.Join("..", "testhelpers", "fixtures"), filepath.Join("..", "..", "testhelpers", "fixtures")} {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return b, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, os.ErrNotExist
}

// MustLoadFixture is LoadFixture that panics on error.
func MustLoadFixture(name string) []byte {
	b, err := LoadFixture(name)
	if err != nil {
		panic("testhelpers: cannot load fixture " + name + ": " + err.Error())
	}
	return b
}
