/*
Package layout transforms a styled node tree into a layout tree of boxes,
each carrying a box type (Block, Inline, or Anonymous) and, once its
children are known, a formatting context (Block or Inline) that governs
how those children are laid out.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import "github.com/npillmayer/schuko/tracing"

// tracer will return a tracer. We are tracing to 'corebrowser.layout'
func tracer() tracing.Trace {
	return tracing.Select("corebrowser.layout")
}
