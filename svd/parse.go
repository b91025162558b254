package svd

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Parse decodes an SVD document and resolves derived peripherals and dim
// arrays so that every peripheral carries its complete register list.
func Parse(r io.Reader) (*DeviceElement, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var device DeviceElement
	if err = xml.Unmarshal(buf, &device); err != nil {
		return nil, fmt.Errorf("xml decode error: %w", err)
	}

	if len(device.Name) == 0 && len(device.Peripherals.Elements) == 0 {
		return nil, ErrNoDevice
	}

	if err = device.Resolve(); err != nil {
		return nil, err
	}
	return &device, nil
}

// Open reads and parses the SVD file at path.
func Open(path string) (*DeviceElement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	device, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return device, nil
}
