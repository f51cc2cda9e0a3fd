/*
Package render wires the URL, htmlparse, cssom/cssadapter, layout and
paint packages into a single straight-line entry point: render.Once
takes an HTML source string and an already parsed base URL and produces
a display list via the HTML parse → style → layout → paint pipeline.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package render

import "github.com/npillmayer/schuko/tracing"

// tracer will return a tracer. We are tracing to 'corebrowser.render'
func tracer() tracing.Trace {
	return tracing.Select("corebrowser.render")
}
