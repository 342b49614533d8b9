package components

import (
	"bytes"
	"fmt"
	"html/template"
)

var helloTemplate = template.Must(template.New("hello").Parse(
	`<div class="hello" data-component="hello">` +
		`{{if .Name}}<h1>Bonjour {{.Name}} !</h1>{{else}}<h1>Bonjour !</h1>{{end}}</div>`))

// Hello greets whoever is named in its props.
type Hello struct {
	props Props
}

// NewHello mounts a Hello with props as given
func NewHello(props Props) (Component, error) {
	if props == nil {
		props = Props{}
	}
	return &Hello{props: props}, nil
}

func (h *Hello) Name() string { return "Hello" }

// Props returns the props the component was mounted with
func (h *Hello) Props() Props { return h.props }

// DisplayName returns the "name" prop as text, empty if absent
func (h *Hello) DisplayName() string {
	v, ok := h.props["name"]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (h *Hello) Render() (template.HTML, error) {
	var buf bytes.Buffer
	if err := helloTemplate.Execute(&buf, struct{ Name string }{h.DisplayName()}); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
