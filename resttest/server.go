package resttest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/restclient/codec"
	"github.com/kbukum/restclient/mediatype"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Recorded is what the server saw of one request.
type Recorded struct {
	Method    string
	Path      string
	Query     string
	RequestID string
	Header    http.Header
}

// Server is a fixture HTTP server backed by gin and httptest.
type Server struct {
	engine *gin.Engine
	ts     *httptest.Server

	mu       sync.Mutex
	requests []Recorded
}

// NewServer starts a fixture server on a loopback port.
func NewServer() *Server {
	s := &Server{engine: gin.New()}
	s.engine.Use(gin.Recovery(), s.record())
	s.routes()
	s.ts = httptest.NewServer(s.engine)
	return s
}

// URL returns the base URL, e.g. "http://127.0.0.1:PORT".
func (s *Server) URL() string {
	return s.ts.URL
}

// Engine returns the gin engine for registering extra routes.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Requests returns the requests received so far, in order.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// Close shuts the server down.
func (s *Server) Close() {
	s.ts.Close()
}

// record stores each request and echoes its X-Request-ID.
func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id != "" {
			c.Header("X-Request-ID", id)
		}
		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Query:     c.Request.URL.RawQuery,
			RequestID: id,
			Header:    c.Request.Header.Clone(),
		})
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) routes() {
	jsonCodec, xmlCodec, yamlCodec := codec.JSON(), codec.XML().WithElementNames("records", "record"), codec.YAML()

	s.engine.GET(PathJSONBean, func(c *gin.Context) {
		c.JSON(http.StatusOK, TheBean())
	})
	s.engine.GET(PathJSONRecords, sequence(jsonCodec, mediatype.ApplicationJSON))
	s.engine.GET(PathJSONEmpty, func(c *gin.Context) {
		c.Data(http.StatusOK, mediatype.ApplicationJSON, []byte("[]"))
	})
	s.engine.GET(PathJSONBroken, func(c *gin.Context) {
		c.Data(http.StatusOK, mediatype.ApplicationJSON, []byte(`{"theName":`))
	})
	s.engine.GET(PathXMLBean, func(c *gin.Context) {
		c.XML(http.StatusOK, TheBean())
	})
	s.engine.GET(PathXMLRecords, sequence(xmlCodec, mediatype.ApplicationXML))
	s.engine.GET(PathYAMLRecords, sequence(yamlCodec, mediatype.ApplicationYAML))
	s.engine.GET(PathText, func(c *gin.Context) {
		c.Data(http.StatusOK, mediatype.TextPlain+"; charset=utf-8", []byte(Text))
	})
	s.engine.GET(PathHTML, func(c *gin.Context) {
		c.Data(http.StatusOK, mediatype.TextHTML+"; charset=utf-8", []byte(HTML))
	})
	s.engine.GET(PathEvents, func(c *gin.Context) {
		c.Data(http.StatusOK, mediatype.TextEventStream, []byte(EventBody))
	})
	s.engine.GET(PathOctet, func(c *gin.Context) {
		c.Data(http.StatusOK, mediatype.ApplicationOctetStream, Octet)
	})
	s.engine.GET(PathUntyped, func(c *gin.Context) {
		// A nil entry stops net/http from sniffing a type.
		c.Writer.Header()["Content-Type"] = nil
		c.Status(http.StatusOK)
		_, _ = c.Writer.Write([]byte(Text))
	})
	s.engine.GET(PathTruncated, func(c *gin.Context) {
		c.Header("Content-Type", mediatype.ApplicationJSON)
		c.Header("Content-Length", strconv.Itoa(TruncateAt))
		c.Status(http.StatusOK)
		_, _ = c.Writer.Write([]byte(`{"theName":`))
	})
	s.engine.GET(PathHeaders, func(c *gin.Context) {
		c.JSON(http.StatusOK, c.Request.Header)
	})
	s.engine.GET(PathSlow, func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
		case <-time.After(2 * time.Second):
		}
		c.Status(http.StatusNoContent)
	})
	s.engine.GET("/status/:code", func(c *gin.Context) {
		code, err := strconv.Atoi(c.Param("code"))
		if err != nil || code < 200 || code > 599 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be a number between 200 and 599"})
			return
		}
		if code == http.StatusNoContent || code == http.StatusNotModified {
			c.Status(code)
			return
		}
		c.JSON(code, gin.H{"status": code, "reason": http.StatusText(code)})
	})
}

func sequence(c codec.Codec, contentType string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		data, err := codec.MarshalSequence(c, Records())
		if err != nil {
			ctx.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		ctx.Data(http.StatusOK, contentType, data)
	}
}
