/*
Package url implements a stateful, character-by-character URL parser
following the WHATWG URL algorithm, including base-URL inheritance,
special-scheme handling, opaque paths, and path shortening.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package url

import "github.com/npillmayer/schuko/tracing"

// tracer will return a tracer. We are tracing to 'corebrowser.url'
func tracer() tracing.Trace {
	return tracing.Select("corebrowser.url")
}
