// Package rest is the typed retrieval facade of restclient.
//
// Each call issues one GET, classifies the body through the client's entity
// registry and converts it under a status policy:
//
//	client, err := rest.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Auth:    httpclient.BearerAuth("token"),
//	})
//
//	// Any 2xx, decoded by the codec matching the Content-Type
//	user, err := rest.Get[User](ctx, client, "/users/123")
//
//	// Exactly 200, whole body as an ordered list
//	users, err := rest.GetListExpect[User](ctx, client, "/users", http.StatusOK)
//
//	// Status only; the body is never decoded
//	code, err := rest.GetStatusCode(ctx, client, "/users/123")
//
// Errors keep their kind: a rejected status, a body that does not convert,
// a registry without a matching rule and a failed exchange are told apart
// with IsStatusMismatch, IsConversion, IsConfiguration and IsTransport.
//
// There is no retry, pooling or redirect policy at this layer.
package rest
