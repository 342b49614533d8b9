package components

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

const (
	// RootID is the id of the element the root component mounts into
	RootID = "app-root"
	// PropsAttr carries the JSON props on the root element
	PropsAttr = "data-props"
)

var (
	ErrRootNotFound   = errors.New("root element not found")
	ErrPropsMissing   = errors.New("root element has no " + PropsAttr + " attribute")
	ErrPropsNotObject = errors.New("props must be a JSON object")
)

// Bootstrap parses a page, finds the element with id rootID, decodes its
// data-props attribute and mounts the root component with those props.
func Bootstrap(page io.Reader, rootID string, factory Factory) (Component, Props, error) {
	doc, err := html.Parse(page)
	if err != nil {
		return nil, nil, fmt.Errorf("parse page: %w", err)
	}
	root := findByID(doc, rootID)
	if root == nil {
		return nil, nil, fmt.Errorf("%w: #%s", ErrRootNotFound, rootID)
	}
	raw, ok := attr(root, PropsAttr)
	if !ok {
		return nil, nil, ErrPropsMissing
	}
	props, err := DecodeProps(raw)
	if err != nil {
		return nil, nil, err
	}
	c, err := factory(props)
	if err != nil {
		return nil, nil, fmt.Errorf("mount %s: %w", rootID, err)
	}
	return c, props, nil
}

// DecodeProps parses a props blob. Numbers stay json.Number so nothing is
// lost on the way through.
func DecodeProps(raw string) (Props, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode props: %w", err)
	}
	if dec.More() {
		return nil, errors.New("decode props: trailing data after JSON value")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrPropsNotObject
	}
	return Props(obj), nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		if v, ok := attr(n, "id"); ok && v == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
