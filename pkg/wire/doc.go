// Package wire implements the simplified HTTP/1.x framing used by wirestub.
//
// Encode turns a message.Request into the method, target, headers and body
// that a client puts on the wire, applying the header defaults
// (Content-Type, Content-Length, User-Agent). Encoded.WriteTo renders those
// parts as raw HTTP/1.1 bytes.
//
// Decode reads one request off a connection without any library HTTP stack:
//
//	METHOD SP TARGET SP VERSION CRLF
//	Name: value CRLF
//	...
//	CRLF
//	body
//
// Leading blank lines are skipped, header lines without a colon are ignored
// and repeated header names accumulate their values.
//
// # Body framing
//
// By default (BodyAvailable) the body is whatever bytes are available right
// after the headers: already-buffered bytes plus anything that arrives within
// a short window. Content-Length is not consulted. A client that sends its
// body late, or in several slow writes, may have it truncated. This matches
// the behavior wirestub has always had. BodyContentLength switches to reading
// exactly Content-Length bytes.
//
// Chunked transfer-encoding, keep-alive and pipelining are not supported.
package wire
