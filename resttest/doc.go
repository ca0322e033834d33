// Package resttest runs a gin fixture server that answers with every body
// shape the client has to classify: JSON, XML and YAML documents and lists,
// text, HTML, event streams, opaque bytes, arbitrary status codes, bodies
// without a content type and bodies that break off mid-read.
//
//	srv := resttest.NewServer()
//	defer srv.Close()
//
//	client, _ := rest.New(httpclient.Config{BaseURL: srv.URL()})
//	records, err := rest.GetList[resttest.Record](ctx, client, resttest.PathJSONRecords)
package resttest
