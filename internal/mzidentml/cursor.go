package mzidentml

import (
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

// cursor iterates over the direct children of one XML element.
// A child cursor obtained with descend must be consumed or closed before
// the parent advances; next does that for us if it was forgotten.
type cursor struct {
	d       *xml.Decoder
	root    bool // document level, ends at EOF instead of an end tag
	done    bool
	pending bool // cur was returned but neither descended into nor decoded
	cur     xml.StartElement
	child   *cursor
}

func newCursor(d *xml.Decoder) *cursor {
	return &cursor{d: d, root: true}
}

// next returns the next child element. io.EOF means the element the cursor
// iterates over has ended.
func (c *cursor) next() (xml.StartElement, error) {
	if c.done {
		return xml.StartElement{}, io.EOF
	}
	if c.child != nil {
		if err := c.child.close(); err != nil {
			return xml.StartElement{}, err
		}
		c.child = nil
	}
	if c.pending {
		c.pending = false
		if err := c.d.Skip(); err != nil {
			return xml.StartElement{}, err
		}
	}
	for {
		t, err := c.d.Token()
		if err != nil {
			if err == io.EOF {
				if c.root {
					c.done = true
					return xml.StartElement{}, io.EOF
				}
				err = io.ErrUnexpectedEOF
			}
			return xml.StartElement{}, err
		}
		switch t := t.(type) {
		case xml.StartElement:
			c.cur = t.Copy()
			c.pending = true
			return c.cur, nil
		case xml.EndElement:
			c.done = true
			return xml.StartElement{}, io.EOF
		}
	}
}

// descend opens a cursor over the children of the element last returned by next
func (c *cursor) descend() *cursor {
	c.pending = false
	c.child = &cursor{d: c.d}
	return c.child
}

// decode unmarshals the element last returned by next into v
func (c *cursor) decode(v any) error {
	if !c.pending {
		return errors.New("mzIdentML: cursor has no element to decode")
	}
	c.pending = false
	se := c.cur
	return c.d.DecodeElement(v, &se)
}

// close skips the rest of the element. Closing an exhausted cursor is a no-op.
func (c *cursor) close() error {
	for !c.done {
		if _, err := c.next(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
	return nil
}
