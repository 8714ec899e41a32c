// Package webform serves a minimal browser front end for the article
// generation pipeline: a form to paste titles, and a JSON endpoint that
// runs them through the generator.
package webform

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lead-miners/prospect/internal/generate"
)

// GenerateRequest is the POST /generate body. Titles may come as a JSON
// list or as one newline-separated block pasted from the form.
type GenerateRequest struct {
	Titles []string `json:"titles" form:"-"`
	Block  string   `json:"-" form:"titles"`
}

// TitleStatus is the per-title outcome in the response.
type TitleStatus struct {
	Title   string `json:"title"`
	OK      bool   `json:"ok"`
	Path    string `json:"path,omitempty"`
	Preview string `json:"preview,omitempty"`
	Error   string `json:"error,omitempty"`
}

// GenerateResponse reports the whole run.
type GenerateResponse struct {
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Results   []TitleStatus `json:"results"`
}

const previewLimit = 200

var formPage = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html>
<head><title>Article Generator</title></head>
<body>
<h1>Article Generator</h1>
<p>One title per line. Each title becomes a markdown article in the output directory.</p>
<form method="post" action="/generate">
<textarea name="titles" rows="12" cols="80" placeholder="Understanding Go Interfaces&#10;Profiling Go Services"></textarea>
<br>
<button type="submit">Generate</button>
</form>
</body>
</html>`))

// Server wires the generation pipeline behind an HTTP front end.
type Server struct {
	gen Generator
	cfg generate.PipelineConfig
}

// Generator matches generate.Generator; aliased here so handler tests can
// substitute fakes without importing the real client.
type Generator = generate.Generator

// NewServer creates a Server that writes articles per cfg.
func NewServer(gen Generator, cfg generate.PipelineConfig) *Server {
	cfg.Progress = false
	return &Server{gen: gen, cfg: cfg}
}

// Router builds the configured Gin engine.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handleForm)
	r.POST("/generate", s.handleGenerate)

	return r
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("Starting web form")
	return s.Router().Run(addr)
}

func (s *Server) handleForm(c *gin.Context) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := formPage.Execute(c.Writer, nil); err != nil {
		log.Error().Err(err).Msg("Failed to render form")
	}
}

func (s *Server) handleGenerate(c *gin.Context) {
	titles, err := parseTitles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(titles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no titles provided"})
		return
	}

	pipeline := generate.NewPipeline(s.gen, s.cfg)

	var results []TitleStatus
	pipeline.OnResult = func(r generate.TitleResult) {
		st := TitleStatus{Title: r.Title, OK: r.Err == nil, Path: r.Path}
		if r.Err != nil {
			st.Error = r.Err.Error()
		} else {
			st.Preview = preview(r.Content)
		}
		results = append(results, st)
	}

	sum, err := pipeline.Run(c.Request.Context(), titles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Attempted: sum.Attempted,
		Succeeded: sum.Succeeded,
		Failed:    sum.Failed,
		Results:   results,
	})
}

// parseTitles accepts either the JSON body or the HTML form field.
func parseTitles(c *gin.Context) ([]string, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return trimTitles(req.Titles), nil
	}

	block := c.PostForm("titles")
	return trimTitles(strings.Split(block, "\n")), nil
}

func trimTitles(in []string) []string {
	var out []string
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func preview(content string) string {
	if len(content) <= previewLimit {
		return content
	}
	return content[:previewLimit] + "…"
}
