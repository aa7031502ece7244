package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrOutputExists is returned by Write when destination is present and
// overwriting was not requested.
var ErrOutputExists = errors.New("output file already exists")

// pkgWriter assembles OPC package in memory, every entry is stamped with the
// same time.
type pkgWriter struct {
	buf   bytes.Buffer
	zw    *zip.Writer
	stamp time.Time
}

func newPkgWriter(stamp time.Time) *pkgWriter {
	p := &pkgWriter{stamp: stamp}
	p.zw = zip.NewWriter(&p.buf)
	return p
}

func (p *pkgWriter) writeXML(name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return p.writeData(name, buf.Bytes(), zip.Deflate)
}

func (p *pkgWriter) writeData(name string, data []byte, method uint16) error {
	w, err := p.zw.CreateHeader(&zip.FileHeader{Name: name, Method: method, Modified: p.stamp})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (p *pkgWriter) bytes() ([]byte, error) {
	if err := p.zw.Close(); err != nil {
		return nil, err
	}
	return p.buf.Bytes(), nil
}

func newXMLDoc() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

// Write puts finished document to outputPath. Data goes to temporary file
// next to destination which is renamed over it at the end, so destination is
// either fully written or left untouched.
func Write(data []byte, outputPath string, overwrite, fixZip bool, log *zap.Logger) (err error) {
	if _, err := os.Stat(outputPath); err == nil {
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrOutputExists, outputPath)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputPath))
	} else if !os.IsNotExist(err) {
		return err
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	tmpName, err := writeTemp(dir, filepath.Base(outputPath), data)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, removeIfExists(tmpName))
		}
	}()

	if fixZip {
		var fixed string
		if fixed, err = writeTemp(dir, filepath.Base(outputPath), nil); err != nil {
			return fmt.Errorf("unable to create output file: %w", err)
		}
		err = copyZipWithoutDataDescriptors(tmpName, fixed)
		err = multierr.Append(err, removeIfExists(tmpName))
		tmpName = fixed
		if err != nil {
			return err
		}
	}

	if err = os.Rename(tmpName, outputPath); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}
	return nil
}

func writeTemp(dir, base string, data []byte) (name string, err error) {
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
		if err != nil {
			os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		return "", err
	}
	return f.Name(), nil
}

func removeIfExists(name string) error {
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func copyZipWithoutDataDescriptors(from, to string) error {
	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("unable to write target file (%s): %w", to, err)
	}
	return out.Close()
}
