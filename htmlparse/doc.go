/*
Package htmlparse turns an HTML source string into a dom.Node document
tree: a tokenizer produces a lazy sequence of tokens, and a tree builder
drives an insertion-mode state machine over those tokens, maintaining an
open-elements stack and an active-formatting-elements list along the lines
of the HTML standard, for the subset of insertion modes this engine
supports. The adoption agency algorithm is a simplified version (see
adoptionAgency in treebuilder.go).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmlparse

import "github.com/npillmayer/schuko/tracing"

// tracer will return a tracer. We are tracing to 'corebrowser.htmlparse'
func tracer() tracing.Trace {
	return tracing.Select("corebrowser.htmlparse")
}
