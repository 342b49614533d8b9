// Package components holds the page components of go-islands: the trivial
// Hello greeting, the delayed-render Slow block and the bootstrap that mounts
// a root component from props embedded in the rendered page.
package components

import (
	"encoding/json"
	"fmt"
	"html/template"
)

// Props are the properties a component is mounted with. Values keep the
// shape they had in the JSON they came from.
type Props map[string]any

// Component is anything that renders an HTML fragment.
type Component interface {
	Name() string
	Render() (template.HTML, error)
}

// Factory builds a component from its props.
type Factory func(props Props) (Component, error)

// EncodeProps serializes props for a data-props attribute.
func EncodeProps(props Props) (string, error) {
	if props == nil {
		props = Props{}
	}
	b, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("encode props: %w", err)
	}
	return string(b), nil
}
