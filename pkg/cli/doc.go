// Package cli implements the wirestub command line.
//
//	wirestub serve      run the stub server in the foreground
//	wirestub request    send a request and print the response
//	wirestub encode     print the wire bytes of a request
//	wirestub decode     parse a raw request and print it
//	wirestub config     show the effective configuration
//	wirestub version    print build information
package cli
