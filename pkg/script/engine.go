// Package script exposes a rendered document to JavaScript for inspection.
// A fresh goja runtime gets a read-only `document` global over the DOM and a
// `layoutRoot()` function returning the laid-out box tree as plain objects.
package script

import (
	"fmt"

	"github.com/dop251/goja"

	"folio/pkg/html"
	"folio/pkg/layout"
)

// Engine executes JavaScript against one parsed document and its layout
// tree.
type Engine struct {
	vm *goja.Runtime
	// node-to-proxy cache so the same JS object is returned for the same
	// underlying *html.Node (needed for === identity checks)
	cache map[*html.Node]goja.Value
}

// New creates an engine bound to the given document root and layout tree.
// The layout root may be nil when only the DOM is of interest.
func New(doc *html.Node, root *layout.LayoutBox) *Engine {
	e := &Engine{
		vm:    goja.New(),
		cache: make(map[*html.Node]goja.Value),
	}
	e.registerDocument(doc)
	e.registerLayout(root)
	return e
}

// Run evaluates a script and returns its completion value.
func (e *Engine) Run(src string) (goja.Value, error) {
	value, err := e.vm.RunString(src)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return value, nil
}

func (e *Engine) registerDocument(doc *html.Node) {
	docObj := e.vm.NewObject()
	docObj.Set("documentElement", e.elementProxy(doc))
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		node := getElementById(doc, call.Arguments[0].String())
		if node == nil {
			return goja.Null()
		}
		return e.elementProxy(node)
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return e.vm.NewArray()
		}
		nodes := getElementsByTagName(doc, call.Arguments[0].String())
		return e.elementArray(nodes)
	})
	e.vm.Set("document", docObj)
}

func (e *Engine) registerLayout(root *layout.LayoutBox) {
	e.vm.Set("layoutRoot", func(call goja.FunctionCall) goja.Value {
		if root == nil {
			return goja.Null()
		}
		return e.vm.ToValue(boxObject(root))
	})
}

// elementProxy builds (or returns the cached) JS object for a DOM node.
func (e *Engine) elementProxy(node *html.Node) goja.Value {
	if proxy, ok := e.cache[node]; ok {
		return proxy
	}

	obj := e.vm.NewObject()
	e.cache[node] = obj

	if node.Type == html.TextNode {
		obj.Set("nodeType", "text")
		obj.Set("text", node.Text)
		return obj
	}

	obj.Set("nodeType", "element")
	obj.Set("tagName", node.TagName)
	if id, ok := node.ID(); ok {
		obj.Set("id", id)
	} else {
		obj.Set("id", "")
	}
	if class, ok := node.GetAttribute("class"); ok {
		obj.Set("className", class)
	} else {
		obj.Set("className", "")
	}

	attributes := make(map[string]string, len(node.Attributes))
	for name, value := range node.Attributes {
		attributes[name] = value
	}
	obj.Set("attributes", attributes)

	obj.Set("children", e.elementArray(node.Children))
	if node.Parent != nil {
		obj.Set("parentNode", e.elementProxy(node.Parent))
	} else {
		obj.Set("parentNode", goja.Null())
	}
	obj.Set("innerHTML", node.Serialize())
	obj.Set("outerHTML", node.SerializeOuter())
	return obj
}

func (e *Engine) elementArray(nodes []*html.Node) goja.Value {
	values := make([]interface{}, 0, len(nodes))
	for _, node := range nodes {
		values = append(values, e.elementProxy(node))
	}
	return e.vm.NewArray(values...)
}

// boxObject converts a layout box into nested plain objects.
func boxObject(box *layout.LayoutBox) map[string]interface{} {
	d := box.Dimensions
	obj := map[string]interface{}{
		"kind":   box.Kind.String(),
		"x":      d.Content.X,
		"y":      d.Content.Y,
		"width":  d.Content.Width,
		"height": d.Content.Height,
		"marginBox": map[string]interface{}{
			"x":      d.MarginBox().X,
			"y":      d.MarginBox().Y,
			"width":  d.MarginBox().Width,
			"height": d.MarginBox().Height,
		},
	}
	if box.Kind != layout.AnonymousBlock {
		node := box.StyleNode().Node
		if node.Type == html.ElementNode {
			obj["tagName"] = node.TagName
		}
	}
	children := make([]map[string]interface{}, 0, len(box.Children))
	for _, child := range box.Children {
		children = append(children, boxObject(child))
	}
	obj["children"] = children
	return obj
}

// getElementById walks the tree and returns the first node with matching id.
func getElementById(node *html.Node, id string) *html.Node {
	if node.Type == html.ElementNode {
		if val, ok := node.ID(); ok && val == id {
			return node
		}
	}
	for _, child := range node.Children {
		if found := getElementById(child, id); found != nil {
			return found
		}
	}
	return nil
}

// getElementsByTagName collects all element nodes with the given tag name.
func getElementsByTagName(node *html.Node, tag string) []*html.Node {
	var result []*html.Node
	if node.Type == html.ElementNode && node.TagName == tag {
		result = append(result, node)
	}
	for _, child := range node.Children {
		result = append(result, getElementsByTagName(child, tag)...)
	}
	return result
}
