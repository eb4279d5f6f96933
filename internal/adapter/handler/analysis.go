package handler

import (
	"encoding/base64"
	"io"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/dbmarquetti/notas-magicas/errors"
	"github.com/dbmarquetti/notas-magicas/internal/adapter/dto/meeting"
	"github.com/dbmarquetti/notas-magicas/internal/usecase/analysis"
)

// Analysis handles analysis submissions
type Analysis struct {
	service *analysis.Service
	logger  *zap.Logger
}

// NewAnalysis creates the analysis handler
func NewAnalysis(service *analysis.Service, logger *zap.Logger) *Analysis {
	return &Analysis{service: service, logger: logger}
}

// AnalyzeMedia accepts a recording either as a multipart upload with a
// "file" part and optional "title" and "deep" form fields, or as a JSON body
// with base64 data. Runs the analysis and returns the recorded history item.
func (h *Analysis) AnalyzeMedia(c echo.Context) error {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return h.analyzeMediaJSON(c)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidMediaInput("missing file part"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}

	title := c.FormValue("title")
	if title == "" {
		title = fileHeader.Filename
	}
	deep, _ := strconv.ParseBool(c.FormValue("deep"))

	item, err := h.service.AnalyzeMedia(c.Request().Context(), analysis.MediaRequest{
		Title:    title,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
		Deep:     deep,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, item)
}

func (h *Analysis) analyzeMediaJSON(c echo.Context) error {
	var req meeting.AnalyzeMediaRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("corpo da requisição inválido"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("mime_type e data são obrigatórios"))
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidMediaInput("data is not valid base64"))
	}

	title := req.Title
	if title == "" {
		title = "Gravação"
	}

	item, err := h.service.AnalyzeMedia(c.Request().Context(), analysis.MediaRequest{
		Title:    title,
		MimeType: req.MimeType,
		Data:     data,
		Deep:     req.Deep,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, item)
}

// AnalyzeTranscript accepts raw text captured live and runs the analysis
func (h *Analysis) AnalyzeTranscript(c echo.Context) error {
	var req meeting.AnalyzeTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("corpo da requisição inválido"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("a transcrição é obrigatória"))
	}

	title := req.Title
	if title == "" {
		title = "Gravação ao Vivo"
	}

	item, err := h.service.AnalyzeTranscript(c.Request().Context(), analysis.TranscriptRequest{
		Title: title,
		Text:  req.Transcript,
		Deep:  req.Deep,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, item)
}
