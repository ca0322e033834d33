package resttest

import (
	"encoding/xml"
	"strconv"
)

// Record is the element type of the list fixtures.
type Record struct {
	XMLName xml.Name `json:"-" yaml:"-" xml:"record"`
	ID      int      `json:"id" xml:"id" yaml:"id"`
	Name    string   `json:"name" xml:"name" yaml:"name"`
}

// Bean is the single-document fixture.
type Bean struct {
	XMLName xml.Name `json:"-" yaml:"-" xml:"bean"`
	TheName int      `json:"theName" xml:"theName" yaml:"theName"`
}

// Records returns the list served by the list fixtures. Duplicates are
// deliberate.
func Records() []Record {
	return []Record{
		{ID: 1, Name: "alpha"},
		{ID: 2, Name: "beta"},
		{ID: 2, Name: "beta"},
		{ID: 3, Name: "gamma"},
	}
}

// TheBean returns the document served by the bean fixtures.
func TheBean() Bean {
	return Bean{TheName: 12345}
}

// Fixture paths.
const (
	PathJSONBean    = "/json/bean"
	PathJSONRecords = "/json/records"
	PathJSONEmpty   = "/json/empty"
	PathJSONBroken  = "/json/malformed"
	PathXMLBean     = "/xml/bean"
	PathXMLRecords  = "/xml/records"
	PathYAMLRecords = "/yaml/records"
	PathText        = "/text"
	PathHTML        = "/html"
	PathEvents      = "/events"
	PathOctet       = "/octet"
	PathUntyped     = "/untyped"
	PathTruncated   = "/truncated"
	PathHeaders     = "/headers"
	PathSlow        = "/slow"
)

// PathStatus returns the path answering with code and a JSON body.
func PathStatus(code int) string {
	return "/status/" + strconv.Itoa(code)
}

// Fixture bodies.
const (
	Text       = "plain text body"
	HTML       = `<html><body><h1 id="title">Fixture</h1><ul><li>a</li><li>b</li></ul></body></html>`
	EventBody  = "event: tick\ndata: 1\n\nevent: tick\ndata: 2\n\n"
	TruncateAt = 64
)

// Octet is the body of the opaque fixture.
var Octet = []byte{0x00, 0x01, 'r', 'a', 'w', 0xfe, 0xff}
