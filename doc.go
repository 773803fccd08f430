// Package qoi implements a codec for the QOI (Quite OK Image) format: a
// lossless RGB/RGBA image codec that represents an image as a linear
// stream of single-byte opcodes over a running per-pixel state.
//
// The package is split into an Encoder, which turns raw pixel bytes (in
// any of ten recognized channel layouts) into a QOI byte stream, and a
// Decoder, which does the reverse. Both are constructed fresh per image
// and hold no state beyond their inputs; nothing in this package is safe
// to share across images, but two Encoders (or Decoders) may run
// concurrently on distinct images without coordination.
package qoi
