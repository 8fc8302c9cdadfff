package soap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// Response wraps a decoded response element and gives typed access to its
// fields. Paths are slash-separated local element names relative to the
// wrapped element; an empty path means the element itself.
type Response struct {
	el *etree.Element
}

// NewResponse wraps an element. Used internally by Call and by tests
// building canned responses.
func NewResponse(el *etree.Element) *Response {
	return &Response{el: el}
}

func (r *Response) find(path string) *etree.Element {
	if r == nil || r.el == nil {
		return nil
	}
	el := r.el
	if path == "" {
		return el
	}
	for _, part := range strings.Split(path, "/") {
		el = childByLocal(el, part)
		if el == nil {
			return nil
		}
	}
	return el
}

// Has reports whether an element exists at path.
func (r *Response) Has(path string) bool {
	return r.find(path) != nil
}

// Element returns the sub-record at path, or nil when absent.
func (r *Response) Element(path string) *Response {
	el := r.find(path)
	if el == nil {
		return nil
	}
	return NewResponse(el)
}

// Text returns the trimmed text at path, or "" when absent.
func (r *Response) Text(path string) string {
	el := r.find(path)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// Int parses the integer at path.
func (r *Response) Int(path string) (int64, error) {
	el := r.find(path)
	if el == nil {
		return 0, fmt.Errorf("soap: missing element %q", path)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(el.Text()), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("soap: element %q: %w", path, err)
	}
	return v, nil
}

// Decimal parses the exact decimal at path. Monetary fields go through
// here; they are never read as floats.
func (r *Response) Decimal(path string) (decimal.Decimal, error) {
	el := r.find(path)
	if el == nil {
		return decimal.Decimal{}, fmt.Errorf("soap: missing element %q", path)
	}
	v, err := decimal.NewFromString(strings.TrimSpace(el.Text()))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("soap: element %q: %w", path, err)
	}
	return v, nil
}

// Items returns the list entries under path. The service encodes arrays as
// <item> children of the list element; Items flattens that wrapper so
// callers see a flat record list. A missing or empty list yields nil.
func (r *Response) Items(path string) []*Response {
	el := r.find(path)
	if el == nil {
		return nil
	}
	var out []*Response
	for _, child := range el.ChildElements() {
		if localName(child.Tag) == "item" {
			out = append(out, NewResponse(child))
		}
	}
	return out
}
