// Package codec implements the snakecodec text transforms.
//
// Eight transforms are available, each with an encode and a decode direction:
//
//   - caesar: alphabet shift over Latin (26 letters) and Cyrillic (32 letters)
//   - rot: rotation over the 95 printable ASCII characters
//   - morse: International Morse code with "/" between words
//   - binary: 8-digit binary per UTF-8 byte
//   - ascii: decimal byte codes in a single-byte code page
//   - a1z26: letter positions joined by hyphens
//   - base32: RFC 4648 Base32 with padding
//   - base64: RFC 4648 Base64
//
// The pure functions ([Shift], [Rotate], [EncodeMorse], [DecodeMorse], ...)
// can be called directly. [Run] adds name lookup, parameter validation and
// observability hooks on top of them, and is what the CLI and HTTP API use.
//
// Encoding never fails on valid text: characters without a mapping become
// the unknown marker "?" (Morse) or pass through (everything else). Decoding
// validates the whole input first and either returns the complete result or
// an error from package errors with code EMPTY_INPUT or INVALID_FORMAT.
//
// All lookup tables are built during package initialization and only read
// afterwards, so every function in this package is safe for concurrent use.
package codec
