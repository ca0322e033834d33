// Package httpclient is the transport layer of the REST client: it performs
// one HTTP exchange and hands back status, headers and the raw body.
//
// Two Transport implementations are provided:
//
//   - Adapter: built on net/http
//   - RestyTransport: built on go-resty
//
// Neither judges the status code. A 404 comes back as a Response like a 200
// does; the rest package applies the caller's status policy. When the body
// cannot be read after the headers arrived, the Response is still returned
// with BodyErr set, so status-only callers keep working.
//
// Subpackages:
//
//   - rest: typed retrieval with content-type dispatch
//   - sse: Server-Sent Events parsing
//
// # Basic Usage
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	resp, err := adapter.RoundTrip(ctx, httpclient.Request{
//	    Path: "/users/123",
//	})
package httpclient
