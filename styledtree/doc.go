/*
Package styledtree is a straightforward default implementation of a styled
document tree.

Overview

cssom.Style() walks a dom.Node parse tree together with a CSSOM and builds
a parallel tree of StyNode, each carrying the computed style.PropertyMap
for its corresponding DOM node.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'corebrowser.style'.
func tracer() tracing.Trace {
	return tracing.Select("corebrowser.style")
}
