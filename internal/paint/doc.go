// Package paint provides platform colors: opaque handles that can be asked
// for their RGB, HSB or greyscale decomposition and may refuse.
//
// A solid color built from one model answers queries in the others by
// conversion. A pattern color, backed by an image, has no single
// decomposition and answers none of them; callers must treat ok=false as
// "not representable in this model", not as an error.
package paint
