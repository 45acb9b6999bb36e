// Package jsonsift implements streaming removal of a designated key from
// JSON input.
//
// The package is organized into several sub-packages:
//
// - sax: The push-based event contract and the key-suppressing filter
// - parser: A SAX-style JSON parser driving a sax.Handler
// - document: A handler that materializes events into a navigable tree
//
// These combine into a processing pipeline:
//
//	parse JSON -> key filter -> encode JSON (or build a document)
//
// Each stage is a streaming operation: events flow through one at a time, so
// filtering and re-encoding never require the whole document in memory, and
// output is available as soon as input arrives.  Only building a document
// materializes anything.
//
// The root package provides the glue: a KeyFilterSource bundling parser and
// filter behind the sax.Source interface, and an Encoder writing an event
// stream back out as formatted, optionally colorized JSON text.
//
// The filter corrects the member counts reported when objects close, so
// downstream consumers that size their storage from the counts (such as the
// document builder) see a consistent stream.
//
// This package was designed for the gq CLI utility in cmd/gq.  You can
// install it with:
//
//	go install github.com/jsonsift/jsonsift/cmd/gq
package jsonsift
