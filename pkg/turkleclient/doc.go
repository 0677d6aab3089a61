// Package turkleclient is the entry point for creating Turkle API clients.
//
//	cli, err := turkleclient.NewWithToken("http://localhost:8000", token)
//
// For logging, retries or a request timeout, fill in a turkle.Config and call
// New.
package turkleclient
