// Package pkg holds the libraries behind snakecodec.
//
// # Overview
//
// snakecodec encodes and decodes text with classical ciphers and encodings
// over Latin and Cyrillic alphabets. The pkg directory is organized as:
//
//  1. [script] - Alphabets, layouts and transliteration
//  2. [codec] - Transforms, the name registry, pipelines and detection
//  3. [signature] - Salted SHA-256 signatures
//  4. [history] - Recorded operations and their storage backends
//  5. [journal] - The append-only activity log
//  6. [errors] - Coded errors shared by every package
//  7. [observability] - Hooks for logging and metrics
//
// # Data flow
//
//	text (args, file, stdin, HTTP body)
//	         ↓
//	errors.ValidateText
//	         ↓
//	codec.Run / codec.Pipeline
//	         ↓
//	history.Store + journal.Journal
//
// The command line lives in internal/cli and the HTTP API in internal/api.
// Both go through codec.Run, so a transform behaves the same on either.
//
// [script]: https://pkg.go.dev/github.com/matzehuels/snakecodec/pkg/script
// [codec]: https://pkg.go.dev/github.com/matzehuels/snakecodec/pkg/codec
// [signature]: https://pkg.go.dev/github.com/matzehuels/snakecodec/pkg/signature
// [history]: https://pkg.go.dev/github.com/matzehuels/snakecodec/pkg/history
// [journal]: https://pkg.go.dev/github.com/matzehuels/snakecodec/pkg/journal
// [errors]: https://pkg.go.dev/github.com/matzehuels/snakecodec/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/snakecodec/pkg/observability
package pkg
