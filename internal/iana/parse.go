// Package iana reads the IANA media types registry, the external enumeration
// the mimetype block is synchronized against.
package iana

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/joshuapare/codectable/pkg/types"
)

const (
	// Namespace is the XML namespace of IANA registry documents.
	Namespace = "http://www.iana.org/assignments"

	// RegistryID is the root id of the media types registry.
	RegistryID = "media-types"

	// DefaultURL is where IANA publishes the media types registry.
	DefaultURL = "https://www.iana.org/assignments/media-types/media-types.xml"
)

// document mirrors registry/registry/record/file, the only path read.
type document struct {
	Registries []struct {
		ID      string `xml:"id,attr"`
		Records []struct {
			Files []string `xml:"http://www.iana.org/assignments file"`
		} `xml:"http://www.iana.org/assignments record"`
	} `xml:"http://www.iana.org/assignments registry"`
}

// ParseRegistry decodes an IANA media types document and returns the text of
// every registry/record/file element in document order. The root element
// must carry id "media-types". Records without a file element are skipped.
func ParseRegistry(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	root, err := rootElement(dec)
	if err != nil {
		return nil, err
	}

	id := ""
	for _, a := range root.Attr {
		if a.Name.Local == "id" && a.Name.Space == "" {
			id = a.Value
		}
	}
	if id != RegistryID {
		return nil, &types.SourceIdentityError{Expected: RegistryID, Actual: id}
	}

	var doc document
	if err := dec.DecodeElement(&doc, &root); err != nil {
		return nil, fmt.Errorf("decode media types registry: %w", err)
	}

	var out []string
	for _, reg := range doc.Registries {
		for _, rec := range reg.Records {
			for _, f := range rec.Files {
				if name := strings.TrimSpace(f); name != "" {
					out = append(out, name)
				}
			}
		}
	}
	return out, nil
}

func rootElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.StartElement{}, errors.New("media types registry: empty document")
			}
			return xml.StartElement{}, fmt.Errorf("media types registry: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

// charsetReader resolves the document's declared encoding through the IANA
// character set index.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
