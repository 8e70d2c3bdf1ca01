// Package media copies sample images into the upload tree and bootstraps the
// sample pools from a placeholder image service.
package media

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

// Kind names an image family. It is also the URL segment of stored paths.
type Kind string

const (
	KindAvatar  Kind = "avatar"
	KindProduct Kind = "product"
)

// Picker chooses an index in [0, n)
type Picker interface {
	IntN(n int) int
}

// Provisioner hands out copies of randomly chosen sample images
type Provisioner struct {
	kind      Kind
	sampleDir string
	uploadDir string
	rng       Picker
	newName   func() string
}

// NewProvisioner creates a provisioner copying from sampleDir into uploadDir
func NewProvisioner(kind Kind, sampleDir, uploadDir string, rng Picker) *Provisioner {
	return &Provisioner{
		kind:      kind,
		sampleDir: sampleDir,
		uploadDir: uploadDir,
		rng:       rng,
		newName:   uuid.NewString,
	}
}

// Provision copies a random sample file under a fresh unique name and returns
// its storage path "/{kind}s/{uuid}{ext}". It returns None when the sample
// pool is missing or empty or the copy fails.
func (p *Provisioner) Provision() mo.Option[string] {
	files, err := listFiles(p.sampleDir)
	if err != nil || len(files) == 0 {
		log.Printf("Warning: sample image directory not found or empty: %s", p.sampleDir)
		return mo.None[string]()
	}

	chosen := files[p.rng.IntN(len(files))]
	filename := p.newName() + filepath.Ext(chosen)
	source := filepath.Join(p.sampleDir, chosen)
	destination := filepath.Join(p.uploadDir, filename)

	if err := copyFile(source, destination); err != nil {
		log.Printf("Warning: failed to copy image %s to %s: %v", source, destination, err)
		return mo.None[string]()
	}
	return mo.Some(fmt.Sprintf("/%ss/%s", p.kind, filename))
}

// listFiles returns the names of the regular files in dir
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// chtimes is replaced in tests
var chtimes = os.Chtimes

// copyFile copies contents and modification time. A failed copy leaves no
// file behind.
func copyFile(source, destination string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(destination)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(destination)
		return err
	}
	if err := chtimes(destination, info.ModTime(), info.ModTime()); err != nil {
		os.Remove(destination)
		return err
	}
	return nil
}
