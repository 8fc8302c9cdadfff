package soap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

const soapEnvNS = "http://schemas.xmlsoap.org/soap/envelope/"

// Param is one named argument of a remote operation. Parameter order is
// preserved on the wire.
type Param struct {
	Name  string
	Value any
}

// Params is the ordered argument list of a remote operation.
type Params []Param

// Set replaces the value of an existing parameter or appends a new one,
// returning the updated list.
func (p Params) Set(name string, value any) Params {
	for i := range p {
		if p[i].Name == name {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Name: name, Value: value})
}

// Get returns the value of the named parameter.
func (p Params) Get(name string) (any, bool) {
	for i := range p {
		if p[i].Name == name {
			return p[i].Value, true
		}
	}
	return nil, false
}

// List builds a wire-level array value: each element is encoded as an
// <item> child of the enclosing parameter element.
func List[T any](values ...T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// buildEnvelope serializes one request envelope for the named operation.
func buildEnvelope(namespace, operation string, params Params) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("soapenv:Envelope")
	env.CreateAttr("xmlns:soapenv", soapEnvNS)
	env.CreateAttr("xmlns:ns1", namespace)

	body := env.CreateElement("soapenv:Body")
	req := body.CreateElement("ns1:" + operation + "Request")
	if err := encodeParams(req, params); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", operation, err)
	}
	return doc, nil
}

func encodeParams(parent *etree.Element, params Params) error {
	for _, p := range params {
		el := parent.CreateElement(p.Name)
		if err := encodeValue(el, p.Value); err != nil {
			return fmt.Errorf("parameter %s: %w", p.Name, err)
		}
	}
	return nil
}

func encodeValue(el *etree.Element, v any) error {
	switch val := v.(type) {
	case nil:
	case string:
		el.SetText(val)
	case bool:
		// The service models booleans as 0/1 integers.
		if val {
			el.SetText("1")
		} else {
			el.SetText("0")
		}
	case int:
		el.SetText(strconv.Itoa(val))
	case int32:
		el.SetText(strconv.FormatInt(int64(val), 10))
	case int64:
		el.SetText(strconv.FormatInt(val, 10))
	case decimal.Decimal:
		el.SetText(val.String())
	case Params:
		return encodeParams(el, val)
	case []any:
		for _, item := range val {
			child := el.CreateElement("item")
			if err := encodeValue(child, item); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}

// parseEnvelope decodes a response envelope. A SOAP fault in the body is
// returned as *Fault; otherwise the result is the operation's response
// element wrapped in a Response.
func parseEnvelope(data []byte) (*Response, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}

	root := doc.Root()
	if root == nil || localName(root.Tag) != "Envelope" {
		return nil, fmt.Errorf("decoding envelope: missing Envelope element")
	}

	body := childByLocal(root, "Body")
	if body == nil {
		return nil, fmt.Errorf("decoding envelope: missing Body element")
	}

	if fault := childByLocal(body, "Fault"); fault != nil {
		return nil, parseFault(fault)
	}

	children := body.ChildElements()
	if len(children) == 0 {
		return nil, fmt.Errorf("decoding envelope: empty Body")
	}
	return NewResponse(children[0]), nil
}

func parseFault(fault *etree.Element) *Fault {
	f := &Fault{}
	if code := childByLocal(fault, "faultcode"); code != nil {
		f.Code = stripPrefix(strings.TrimSpace(code.Text()))
	}
	if msg := childByLocal(fault, "faultstring"); msg != nil {
		f.Message = strings.TrimSpace(msg.Text())
	}
	return f
}

func localName(tag string) string {
	if i := strings.LastIndex(tag, ":"); i >= 0 {
		return tag[i+1:]
	}
	return tag
}

func stripPrefix(s string) string {
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return s
}

func childByLocal(el *etree.Element, name string) *etree.Element {
	for _, child := range el.ChildElements() {
		if localName(child.Tag) == name {
			return child
		}
	}
	return nil
}
