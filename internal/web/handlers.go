package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/potax/internal/export"
	"github.com/Veraticus/potax/internal/flow"
	"github.com/Veraticus/potax/internal/viewmodel"
)

type pageData struct {
	View        viewmodel.OutcomeView
	PageTitle   string
	Title       string
	Intro       string
	SubmitLabel string
	Description string
	Supplier    string
	SpinnerText string
	Footer      string
	Filename    string
}

func newPage(o flow.Outcome) pageData {
	return pageData{
		View:        viewmodel.FromOutcome(o),
		PageTitle:   viewmodel.PageTitle,
		Title:       viewmodel.Title,
		Intro:       viewmodel.Intro,
		SubmitLabel: viewmodel.SubmitLabel,
		Description: o.Request.Description,
		Supplier:    o.Request.Supplier,
		SpinnerText: viewmodel.SpinnerText,
		Footer:      viewmodel.Footer,
		Filename:    export.DefaultFilename,
	}
}

type classifyForm struct {
	Description string `form:"description"`
	Supplier    string `form:"supplier"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "page.html", newPage(flow.Idle()))
}

func (s *Server) handleClassifyForm(c *gin.Context) {
	var form classifyForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form: %v", err)
		return
	}

	outcome := s.submitter.Submit(c.Request.Context(), flow.Request{
		Description: form.Description,
		Supplier:    form.Supplier,
	})
	c.HTML(http.StatusOK, "page.html", newPage(outcome))
}

// handleExport returns the document posted back by the result page as a
// download. The document is decoded and re-encoded so only a classification
// object is ever served.
func (s *Server) handleExport(c *gin.Context) {
	result, err := flow.Decode(c.PostForm("document"))
	if err != nil {
		c.String(http.StatusBadRequest, "nothing to export")
		return
	}

	doc, err := result.Export()
	if err != nil {
		c.String(http.StatusInternalServerError, "export failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.DefaultFilename+`"`)
	c.Data(http.StatusOK, export.MIMEType, doc)
}

type classifyRequest struct {
	Description string `json:"description"`
	Supplier    string `json:"supplier"`
}

func (s *Server) handleClassifyAPI(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	outcome := s.submitter.Submit(c.Request.Context(), flow.Request{
		Description: req.Description,
		Supplier:    req.Supplier,
	})
	c.JSON(apiStatus(outcome.State), viewmodel.ToPayload(outcome))
}

// apiStatus maps a terminal state to the API response code.
func apiStatus(state flow.State) int {
	switch state {
	case flow.StateSuccess:
		return http.StatusOK
	case flow.StateInvalidInput:
		return http.StatusUnprocessableEntity
	case flow.StateParseError:
		return http.StatusBadGateway
	case flow.StateUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
