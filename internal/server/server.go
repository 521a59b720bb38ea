package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Diogenes67/aurum-asd/internal/config"
	"github.com/Diogenes67/aurum-asd/internal/core/classify"
	"github.com/Diogenes67/aurum-asd/internal/core/evidence"
	"github.com/Diogenes67/aurum-asd/internal/core/model"
	"github.com/Diogenes67/aurum-asd/internal/core/report"
	"github.com/Diogenes67/aurum-asd/internal/llm"
)

type Server struct {
	Classifier *classify.HybridClassifier
	Merger     *evidence.Merger
	TwoStage   *evidence.TwoStageCategorizer
	Functional *evidence.FunctionalExtractor
	Reports    *report.Builder
}

// NewServer wires the pipeline. A missing credential or unknown provider is a
// startup error, not a runtime one.
func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm client: %w", err)
	}

	return &Server{
		Classifier: classify.NewHybridClassifier(client, cfg.Classify),
		Merger:     evidence.NewMerger(client, cfg.Extraction),
		TwoStage:   evidence.NewTwoStageCategorizer(client, cfg.TwoStage),
		Functional: evidence.NewFunctionalExtractor(client, cfg.Extraction),
		Reports:    report.NewBuilder(client, report.DiskTemplateStore{Dir: cfg.Reports.TemplateDir}),
	}, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	// A handler panic still answers with the structured failure envelope,
	// not a bare 500.
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		c.AbortWithStatusJSON(http.StatusOK, gin.H{
			"success": false,
			"error":   fmt.Sprintf("internal error: %v", recovered),
		})
	}))
	r.Use(requestID())

	r.POST("/api/status", s.Status)
	r.POST("/api/prescan-batch", s.PrescanBatch)
	r.POST("/api/extract", s.Extract)
	r.POST("/api/extract-hf", s.Extract)
	r.POST("/api/extract_twostage", s.ExtractTwoStage)
	r.POST("/api/extract-functional", s.ExtractFunctional)
	r.POST("/api/generate-report", s.GenerateReport)
	r.POST("/api/export-docx", s.ExportDocx)

	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Header("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}

// fail is the structured failure envelope: callers can tell "the operation
// failed" apart from "the operation found nothing".
func fail(c *gin.Context, err error) {
	log.Printf("[API] %s failed (request %v): %v", c.FullPath(), c.MustGet("request_id"), err)
	c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
}

// Status probes the local Ollama daemon for available models.
func (s *Server) Status(c *gin.Context) {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://localhost:11434/api/tags")
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": err.Error()})
		return
	}
	defer resp.Body.Close()

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": err.Error()})
		return
	}

	models := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		models = append(models, m.Name)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "models": models})
}

type prescanRequest struct {
	Documents json.RawMessage `json:"documents"`
	UseCloud  bool            `json:"useCloud"`
}

func (s *Server) PrescanBatch(c *gin.Context) {
	var req prescanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("invalid request: %w", err))
		return
	}

	docs, err := orderedDocuments(req.Documents)
	if err != nil {
		fail(c, fmt.Errorf("invalid documents: %w", err))
		return
	}

	log.Printf("[PreScan] %d documents", len(docs))
	for _, doc := range docs {
		log.Printf("  - %s", doc.Name)
	}

	record := s.Classifier.Classify(c.Request.Context(), docs)
	log.Printf("[PreScan] Red flags: %v", record.RedFlags)

	c.JSON(http.StatusOK, gin.H{"success": true, "metadata": record, "time": 0})
}

type extractRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

func (s *Server) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("invalid request: %w", err))
		return
	}

	log.Printf("[Extract] Text length: %d", len(req.Text))
	bucket := s.Merger.Extract(c.Request.Context(), req.Text)

	payload, err := json.Marshal(bucket)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "response": string(payload)})
}

type twoStageRequest struct {
	Documents json.RawMessage `json:"documents"`
}

func (s *Server) ExtractTwoStage(c *gin.Context) {
	var req twoStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("invalid request: %w", err))
		return
	}

	docs, err := orderedDocuments(req.Documents)
	if err != nil {
		fail(c, fmt.Errorf("invalid documents: %w", err))
		return
	}

	result, stats, err := s.TwoStage.Categorize(c.Request.Context(), docs)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "evidence": result, "stats": stats})
}

type functionalRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

func (s *Server) ExtractFunctional(c *gin.Context) {
	var req functionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("invalid request: %w", err))
		return
	}

	summary, err := s.Functional.Extract(c.Request.Context(), req.Text)
	if err != nil {
		fail(c, err)
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "response": string(payload)})
}

type reportRequest struct {
	ReportType string                     `json:"reportType"`
	ClientInfo report.ClientInfo          `json:"clientInfo"`
	Evidence   model.EvidenceBucket       `json:"evidence"`
	Functional map[string]string          `json:"functionalAssessment"`
	Diagnostic report.DiagnosticDecisions `json:"diagnosticDecisions"`
	CaseNote   string                     `json:"caseNote"`
	Documents  json.RawMessage            `json:"documents"`
	Model      string                     `json:"model"`
}

func (s *Server) GenerateReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("invalid request: %w", err))
		return
	}

	docs, err := orderedDocuments(req.Documents)
	if err != nil {
		fail(c, fmt.Errorf("invalid documents: %w", err))
		return
	}

	log.Printf("[Report] Generating %s report for %s", req.ReportType, req.ClientInfo.Name)

	result, err := s.Reports.Generate(c.Request.Context(), report.Request{
		Type:       req.ReportType,
		Client:     req.ClientInfo,
		Evidence:   req.Evidence,
		Functional: req.Functional,
		Diagnostic: req.Diagnostic,
		CaseNote:   req.CaseNote,
		Documents:  docs,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "report": result})
}

func (s *Server) ExportDocx(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": false, "error": "DOCX export not yet implemented"})
}

// orderedDocuments decodes a {"name": "text", ...} object while preserving
// key order, which a plain map unmarshal would lose. Document order drives
// first-writer-wins merging downstream.
func orderedDocuments(raw json.RawMessage) ([]model.Document, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("documents must be a JSON object")
	}

	var docs []model.Document
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", keyTok)
		}

		var text string
		if err := dec.Decode(&text); err != nil {
			return nil, fmt.Errorf("document %q: %w", name, err)
		}
		docs = append(docs, model.Document{Name: name, Text: text})
	}

	return docs, nil
}
