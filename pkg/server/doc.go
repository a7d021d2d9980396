// Package server is a raw-socket HTTP stub server.
//
// Every accepted connection is read once with the wire codec, the parsed
// request is appended to the request log, and the current stub bytes are
// written back verbatim before the connection is closed. The server never
// interprets the stub: the caller is responsible for a well-formed status
// line, headers and Content-Length.
//
//	srv := server.New(server.WithHost("127.0.0.1"))
//	port, err := srv.Start(0)
//	srv.SetStub([]byte("HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello"))
//	// ... issue requests against port ...
//	reqs := srv.Requests()
//
// Connections are handled by at most Workers goroutines at a time; extra
// connections wait for a slot. There is no keep-alive, no pipelining and no
// per-connection timeout beyond the body availability window of the codec.
package server
