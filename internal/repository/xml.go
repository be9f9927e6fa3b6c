package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

const xmlItemTag = "item"

// XMLToJSON converts an XML domain document into the equivalent JSON document.
//
// The root element stands for the document itself. Child elements become
// object keys (a name="..." attribute overrides the tag), <item> children
// become array elements, and leaf text that parses as a number becomes a JSON
// number. An element carrying list="true" is an array even when empty.
func XMLToJSON(raw []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("XML document has no root element")
	}

	value, err := elementValue(root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(value)
}

func elementValue(el *etree.Element) (any, error) {
	children := el.ChildElements()
	if len(children) == 0 {
		if el.SelectAttrValue("list", "") == "true" {
			return []any{}, nil
		}
		return leafValue(el.Text()), nil
	}

	if isList(children) {
		items := make([]any, 0, len(children))
		for _, child := range children {
			v, err := elementValue(child)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	}

	obj := make(map[string]any, len(children))
	for _, child := range children {
		key := child.SelectAttrValue("name", child.Tag)
		if _, dup := obj[key]; dup {
			return nil, fmt.Errorf("duplicate element %q under <%s>", key, el.Tag)
		}
		v, err := elementValue(child)
		if err != nil {
			return nil, err
		}
		obj[key] = v
	}
	return obj, nil
}

func isList(children []*etree.Element) bool {
	for _, child := range children {
		if child.Tag != xmlItemTag {
			return false
		}
	}
	return true
}

func leafValue(text string) any {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	if c := text[0]; (c == '-' || (c >= '0' && c <= '9')) && json.Valid([]byte(text)) {
		return json.Number(text)
	}
	return text
}
