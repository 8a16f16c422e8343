package seed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Skotchmaster/shoe_shop/services/catalog/internal/transport"
)

type File struct {
	Shoes []transport.CreateShoeRequest `yaml:"shoes"`
}

func Decode(r io.Reader) ([]transport.CreateShoeRequest, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return f.Shoes, nil
}

func Load(path string) ([]transport.CreateShoeRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
