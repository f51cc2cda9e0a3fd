/*
Package paint traverses a laid-out box tree in document order and emits a
display list: an ordered, serializable sequence of paint commands drawn
from a closed vocabulary (FillRect, FillRRect, StrokeRect) suitable for
shipping across an IPC boundary to a backend rasterizer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package paint

import "github.com/npillmayer/schuko/tracing"

// tracer will return a tracer. We are tracing to 'corebrowser.paint'
func tracer() tracing.Trace {
	return tracing.Select("corebrowser.paint")
}
