// Package svdtest provides SVD documents for tests. Each document lives in a
// txtar archive under testdata as a file named device.svd.
package svdtest

import (
	"bytes"
	"embed"
	"fmt"
	"testing"

	"golang.org/x/tools/txtar"

	"omibyte.io/svdload/svd"
)

//go:embed testdata/*.txtar
var archives embed.FS

// Source returns the raw device.svd of the named archive.
func Source(name string) ([]byte, error) {
	data, err := archives.ReadFile("testdata/" + name + ".txtar")
	if err != nil {
		return nil, err
	}

	archive := txtar.Parse(data)
	for _, f := range archive.Files {
		if f.Name == "device.svd" {
			return f.Data, nil
		}
	}
	return nil, fmt.Errorf("%s: archive has no device.svd", name)
}

// Device parses the named archive and fails the test on any error.
func Device(t testing.TB, name string) *svd.DeviceElement {
	t.Helper()
	src, err := Source(name)
	if err != nil {
		t.Fatal(err)
	}
	device, err := svd.Parse(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return device
}
