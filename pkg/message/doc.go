// Package message provides the immutable HTTP message model used by wirestub.
//
// A Request is built with a chain of With* calls. Every call returns a new
// Request and never touches the receiver, so a partially built request can be
// reused as a template for several variants:
//
//	base := message.NewRequest("http://127.0.0.1:7070").
//	    WithPath("users").
//	    WithHeader("Accept", "application/json")
//
//	first := base.WithBodyString(`{"name":"a"}`)
//	second := base.WithBodyString(`{"name":"b"}`)
//
// Headers and parameters are case-insensitive, multi-valued and set-like:
// adding a value that is already present is a no-op, and adding a new value
// for an existing name keeps the earlier ones.
//
// Response is the read-only view of a reply, with its charset detected from
// the Content-Type header.
//
// This is a leaf package; the wire codec in pkg/wire turns Requests into bytes
// and bytes into parsed requests and Responses.
package message
