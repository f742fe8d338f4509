package reference

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"hormoiq/domain/core"
)

// Load decodes a YAML dataset and validates it. Unknown keys are rejected so a typo in
// a table name fails loudly instead of silently leaving the table empty.
func Load(r io.Reader) (*Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", core.ErrInvalidDataset, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// LoadFile reads a YAML dataset from disk
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference dataset %s: %w", path, err)
	}
	return Load(bytes.NewReader(data))
}

// Marshal encodes the dataset as YAML in the layout Load accepts
func (d *Dataset) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Hash fingerprints the dataset content so stored results can name the data they
// were computed against.
func (d *Dataset) Hash() (core.DatasetHash, error) {
	data, err := d.Marshal()
	if err != nil {
		return "", err
	}
	return core.DatasetHash(core.NewHash(data)), nil
}
