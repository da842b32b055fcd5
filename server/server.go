// Package server exposes the extraction over HTTP.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/revelaction/binrel/extract"
	sent "github.com/revelaction/binrel/sentence"
)

type Server struct {
	Extractor *extract.Extractor
	Logger    *slog.Logger
}

func NewServer(e *extract.Extractor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Extractor: e, Logger: logger}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.Health)

	v1 := r.Group("/v1")
	v1.POST("/extract", s.Extract)
	v1.GET("/types", s.Types)

	return r
}

type RelationResponse struct {
	Relation  string `json:"relation"`
	Record    string `json:"record"`
	Predicate string `json:"predicate"`
	Negated   bool   `json:"negated"`
	Passive   bool   `json:"passive"`
	Index     int    `json:"index"`
}

type ExtractResponse struct {
	Sentence  string             `json:"sentence"`
	Relations []RelationResponse `json:"relations"`
}

func (s *Server) Extract(c *gin.Context) {
	var req sent.Sentence
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := s.Extractor.Sentence(req)
	if err != nil {
		if errors.Is(err, extract.ErrMalformedSentence) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		s.Logger.Error("server: extraction failed", "sentence", req.Id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract"})
		return
	}

	resp := ExtractResponse{Sentence: res.Text, Relations: []RelationResponse{}}
	for _, r := range res.Relations {
		resp.Relations = append(resp.Relations, RelationResponse{
			Relation:  r.Display,
			Record:    r.Record(),
			Predicate: r.Predicate,
			Negated:   r.Negated,
			Passive:   r.Passive,
			Index:     r.Index,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": s.Extractor.Types().Sorted()})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
