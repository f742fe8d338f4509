package ui

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"hormoiq/adapters/excel"
	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/internal/errors"
	"hormoiq/internal/report"
	"hormoiq/ui/middleware"

	"github.com/gin-gonic/gin"
)

// respondError maps err onto a status code through its application error code
func (s *Server) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error", "code": code})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func (s *Server) respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": errors.CodeValidationError})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReference(c *gin.Context) {
	ds := s.service.Resolver().Dataset()
	c.JSON(http.StatusOK, gin.H{
		"version":      ds.Version,
		"dataset_hash": s.service.DatasetHash(),
		"bioage":       ds.BioAge,
	})
}

func (s *Server) handleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.service.Catalog().Items()})
}

func (s *Server) handleGetProfile(c *gin.Context) {
	profile, err := s.service.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) handlePutProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBindError(c, err)
		return
	}
	profile := req.toProfile()
	if err := s.service.UpdateProfile(c.Request.Context(), middleware.UserID(c), profile); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) handleLogMeasurement(c *gin.Context) {
	var req measurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBindError(c, err)
		return
	}
	res, err := s.service.LogMeasurement(c.Request.Context(), middleware.UserID(c), req.toMeasurement())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (s *Server) handleListMeasurements(c *gin.Context) {
	history, err := s.service.ListMeasurements(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": history, "count": len(history)})
}

func (s *Server) handleDeleteMeasurement(c *gin.Context) {
	id, err := core.ParseMeasurementID(c.Param("mid"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.service.DeleteMeasurement(c.Request.Context(), middleware.UserID(c), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleImport accepts a multipart "file" field holding an xlsx, csv or json history
func (s *Server) handleImport(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		s.respondBindError(c, err)
		return
	}
	file, err := header.Open()
	if err != nil {
		s.respondError(c, errors.ImportFailed(header.Filename, err))
		return
	}
	defer file.Close()

	var data *excel.ExcelData
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		data, err = excel.ReadCSV(file)
	case ".json":
		data, err = excel.ReadJSON(file, c.Query("path"))
	default:
		data, err = excel.ReadWorkbook(file, c.Query("sheet"))
	}
	if err != nil {
		s.respondError(c, errors.ImportFailed(header.Filename, err))
		return
	}

	userID := middleware.UserID(c)
	res, err := s.importer.Convert(data, userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	stored, err := s.service.ImportMeasurements(c.Request.Context(), userID, res.Measurements)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"stored": stored, "skipped": res.Skipped})
}

func (s *Server) handleReadiness(c *gin.Context) {
	rep, err := s.service.Readiness(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) handleBioAge(c *gin.Context) {
	res, err := s.service.BioAge(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleBioAgeHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if err != nil || limit < 1 || limit > 365 {
		s.respondError(c, core.NewValidationError("limit", "must be between 1 and 365"))
		return
	}
	recs, err := s.service.BioAgeHistory(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": recs})
}

// handleImpact analyzes one intervention when ?intervention= is given, and every
// logged intervention otherwise. ?hormone= narrows the hormones (comma separated).
func (s *Server) handleImpact(c *gin.Context) {
	hormones, err := parseHormones(c.Query("hormone"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	userID := middleware.UserID(c)
	if intervention := strings.TrimSpace(c.Query("intervention")); intervention != "" {
		if len(hormones) != 1 {
			s.respondError(c, core.NewValidationError("hormone", "exactly one hormone is required with an intervention"))
			return
		}
		res, err := s.service.Impact(c.Request.Context(), userID, intervention, hormones[0])
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
		return
	}

	rep, err := s.service.ImpactReport(c.Request.Context(), userID, hormones)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func parseHormones(raw string) ([]hormone.Hormone, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []hormone.Hormone
	for _, part := range strings.Split(raw, ",") {
		h, err := hormone.ParseHormone(part)
		if err != nil {
			return nil, fmt.Errorf("hormone %q: %w", part, err)
		}
		out = append(out, h)
	}
	return out, nil
}

func (s *Server) handleStreak(c *gin.Context) {
	res, err := s.service.Streak(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleInsights(c *gin.Context) {
	res, err := s.service.Insights(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleReport renders the score summary as markdown, or as HTML with ?format=html
func (s *Server) handleReport(c *gin.Context) {
	md, err := s.service.Report(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	switch c.DefaultQuery("format", "markdown") {
	case "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", md)
	case "html":
		c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(md))
	default:
		s.respondError(c, core.NewValidationError("format", "must be markdown or html"))
	}
}
