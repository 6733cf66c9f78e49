// Package render groups the banner rendering packages.
//
// Rendering is split into three steps, each in its own subpackage:
//
//   - [layout]: builds a component tree from a resolved entity and its style
//     settings
//   - [component]: the tree node types plus text truncation and wrapping
//   - [sink]: draws a tree on an RGBA canvas and encodes PNG or JPEG
//
// Layouts never draw and sinks never look at entities, so a tree can be
// inspected in tests without decoding images.
//
//	tree, err := layout.Build(resolved)
//	if err != nil {
//	    return err
//	}
//	data, contentType, err := sink.Compose(tree, sink.PNG)
//
// [layout]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/render/layout
// [component]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/render/component
// [sink]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/render/sink
package render
