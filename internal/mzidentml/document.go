package mzidentml

import (
	"bufio"
	"compress/gzip"
	"encoding/xml"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// Decode reads a complete mzIdentML document into memory
func Decode(reader io.Reader) (*Document, error) {
	var doc Document
	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel
	// Skip over anything before the root element (processing instructions,
	// comments), like the mzML reader does for indexedmzML
	for {
		t, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return nil, ErrNoRootElement
			}
			return nil, errors.Wrap(err, "mzIdentML: decode")
		}
		if se, ok := t.(xml.StartElement); ok {
			if se.Name.Local != "MzIdentML" {
				return nil, errors.Wrapf(ErrNoRootElement, "found <%s>", se.Name.Local)
			}
			if err := d.DecodeElement(&doc, &se); err != nil {
				return nil, errors.Wrap(err, "mzIdentML: decode")
			}
			return &doc, nil
		}
	}
}

// Encode writes the document as indented XML
func Encode(writer io.Writer, doc *Document) error {
	if _, err := io.WriteString(writer, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(writer)
	enc.Indent(``, `  `)
	out := *doc
	if out.Version == "" {
		out.Version = "1.1.0"
	}
	content := documentWrite{
		Xmlns:          Namespace,
		Xsi:            "http://www.w3.org/2001/XMLSchema-instance",
		SchemaLocation: SchemaLocation,
		Document:       &out,
	}
	if err := enc.Encode(&content); err != nil {
		return errors.Wrap(err, "mzIdentML: encode")
	}
	return enc.Flush()
}

// gzipReadCloser closes both the gzip stream and the underlying file
type gzipReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (g gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if ferr := g.f.Close(); err == nil {
		err = ferr
	}
	return err
}

type fileReadCloser struct {
	*bufio.Reader
	f *os.File
}

func (r fileReadCloser) Close() error { return r.f.Close() }

// Open opens an mzIdentML file. Gzip compressed files are detected by
// their magic bytes and decompressed transparently.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReaderSize(f, 1<<16)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		z, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "mzIdentML: open %s", name)
		}
		return gzipReadCloser{Reader: z, f: f}, nil
	}
	return fileReadCloser{Reader: br, f: f}, nil
}
