// Package turkle provides types, interfaces, and errors for working with the
// Turkle crowd-labeling REST API.
//
// # Overview
//
// The turkle package defines the wire payloads (User, Group, Project, Batch,
// Permissions), the per-operation request structs, and the interfaces of the
// five resource clients. A concrete implementation is provided by the
// turkleclient package:
//
//	import (
//	  "context"
//	  "fmt"
//	  "log"
//
//	  "github.com/hltcoe/turkle-client/pkg/turkle"
//	  "github.com/hltcoe/turkle-client/pkg/turkleclient"
//	)
//
//	func example() {
//	  cli, err := turkleclient.NewWithToken("http://localhost:8000/", "token")
//	  if err != nil { log.Fatal(err) }
//
//	  users, err := cli.Users().List(context.Background())
//	  if err != nil { log.Fatal(err) }
//	  fmt.Println(users)
//	}
//
// # Output
//
// Every operation returns the raw response text. Collections are walked page
// by page following the server's "next" link and returned as newline
// delimited JSON, one compact object per line, in server order. Bulk create
// and update issue one request per item and join the response bodies with
// newlines.
//
// # Errors
//
// All failures are a *ClientError whose Kind is KindInvalidArgument (rejected
// before any request), KindConnectionFailure (server unreachable), or
// KindServer (status >= 400). Use errors.Is with ErrInvalidArgument,
// ErrConnectionFailure, or ErrServer, or the IsNotFound/IsForbidden helpers.
package turkle
