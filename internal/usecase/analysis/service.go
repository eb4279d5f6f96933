package analysis

import (
	"context"
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/dbmarquetti/notas-magicas/errors"
	"github.com/dbmarquetti/notas-magicas/internal/domain/entities"
	"github.com/dbmarquetti/notas-magicas/pkg/ai"
)

// ModelClient is the slice of the Gemini client the service depends on
type ModelClient interface {
	GenerateMediaAnalysis(ctx context.Context, media ai.MediaInput, deep bool) (string, error)
	GenerateTranscriptAnalysis(ctx context.Context, rawTranscript string, deep bool) (string, error)
	UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (*ai.FileRef, error)
	DeleteFile(ctx context.Context, name string) error
}

// HistoryAppender records finished analyses
type HistoryAppender interface {
	Append(ctx context.Context, item entities.HistoryItem) error
}

// MediaArchiver persists the original recording bytes. Archiving is
// best-effort and never blocks an analysis.
type MediaArchiver interface {
	SaveRecording(ctx context.Context, name string, data []byte, mimeType string) error
}

// ConnectivityProbe reports whether the upstream provider is reachable. It
// exists to fail fast with the offline message before any payload is sent.
type ConnectivityProbe func(ctx context.Context) bool

// MediaRequest describes a recording submitted for analysis
type MediaRequest struct {
	Title    string
	MimeType string
	Data     []byte
	Deep     bool
}

// TranscriptRequest describes a raw live transcript submitted for analysis
type TranscriptRequest struct {
	Title string
	Text  string
	Deep  bool
}

// Service orchestrates the analysis pipeline: validate, send to the model,
// parse, normalize the transcript and record the result.
type Service struct {
	model       ModelClient
	parser      *Parser
	poller      *Poller
	history     HistoryAppender
	archive     MediaArchiver
	online      ConnectivityProbe
	inlineLimit int64
	logger      *zap.Logger

	inFlight atomic.Bool
}

// WithConnectivityProbe installs a fast-fail reachability check run before
// each submission
func (s *Service) WithConnectivityProbe(probe ConnectivityProbe) *Service {
	s.online = probe
	return s
}

// NewService creates the analysis service. archive may be nil when no object
// storage is configured.
func NewService(model ModelClient, parser *Parser, poller *Poller, history HistoryAppender, archive MediaArchiver, inlineLimit int64, logger *zap.Logger) *Service {
	if inlineLimit <= 0 {
		inlineLimit = 15 * 1024 * 1024
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		model:       model,
		parser:      parser,
		poller:      poller,
		history:     history,
		archive:     archive,
		inlineLimit: inlineLimit,
		logger:      logger,
	}
}

// AnalyzeMedia runs the full pipeline for an uploaded recording. Only one
// analysis runs at a time; concurrent submissions are rejected. Recordings
// above the inline limit go through the Files API and are polled until
// active; the uploaded copy is deleted afterwards on a best-effort basis.
func (s *Service) AnalyzeMedia(ctx context.Context, req MediaRequest) (*entities.HistoryItem, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, apperrors.ErrAnalysisInProgress()
	}
	defer s.inFlight.Store(false)

	if s.online != nil && !s.online(ctx) {
		return nil, apperrors.ErrNetworkUnavailable()
	}

	if err := validateMedia(req.MimeType, req.Data); err != nil {
		return nil, err
	}

	if s.archive != nil {
		if err := s.archive.SaveRecording(ctx, req.Title, req.Data, req.MimeType); err != nil {
			s.logger.Warn("failed to archive recording", zap.String("title", req.Title), zap.Error(err))
		}
	}

	media := ai.MediaInput{MimeType: req.MimeType}
	if int64(len(req.Data)) > s.inlineLimit {
		ref, err := s.model.UploadFile(ctx, req.Data, req.MimeType, req.Title)
		if err != nil {
			return nil, translateTransportError(err)
		}
		defer s.cleanupFile(ref.Name)

		active, err := s.poller.WaitUntilActive(ctx, ref)
		if err != nil {
			return nil, err
		}
		media.URI = active.URI
	} else {
		media.Data = base64.StdEncoding.EncodeToString(req.Data)
	}

	reply, err := s.model.GenerateMediaAnalysis(ctx, media, req.Deep)
	if err != nil {
		return nil, translateTransportError(err)
	}

	return s.finish(ctx, req.Title, reply, entities.AnalysisSourceUpload)
}

// AnalyzeTranscript runs the pipeline over raw text captured live
func (s *Service) AnalyzeTranscript(ctx context.Context, req TranscriptRequest) (*entities.HistoryItem, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, apperrors.ErrAnalysisInProgress()
	}
	defer s.inFlight.Store(false)

	if s.online != nil && !s.online(ctx) {
		return nil, apperrors.ErrNetworkUnavailable()
	}

	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.ErrNoSpeechDetected()
	}

	reply, err := s.model.GenerateTranscriptAnalysis(ctx, req.Text, req.Deep)
	if err != nil {
		return nil, translateTransportError(err)
	}

	return s.finish(ctx, req.Title, reply, entities.AnalysisSourceLive)
}

// finish parses the reply and records the result. The transcript is stored
// as returned by the model, one entry per turn; renderers group consecutive
// turns themselves. A history write failure is logged but does not lose the
// finished analysis.
func (s *Service) finish(ctx context.Context, title, reply string, source entities.AnalysisSource) (*entities.HistoryItem, error) {
	result, err := s.parser.Parse(reply)
	if err != nil {
		return nil, err
	}

	item := entities.NewHistoryItem(title, *result, source, time.Now())
	if err := s.history.Append(ctx, item); err != nil {
		s.logger.Warn("failed to record analysis in history",
			zap.Int64("id", item.ID),
			zap.Error(err))
	}

	s.logger.Info("analysis completed",
		zap.Int64("id", item.ID),
		zap.String("source", string(source)),
		zap.Int("transcript_entries", len(result.Transcript)))

	return &item, nil
}

func (s *Service) cleanupFile(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.model.DeleteFile(ctx, name); err != nil {
		s.logger.Warn("failed to delete uploaded file", zap.String("file", name), zap.Error(err))
	}
}

// validateMedia rejects empty recordings and non audio/video content
func validateMedia(mimeType string, data []byte) error {
	if len(data) == 0 {
		return apperrors.ErrInvalidMediaInput("empty recording")
	}
	if !strings.HasPrefix(mimeType, "audio/") && !strings.HasPrefix(mimeType, "video/") {
		return apperrors.ErrInvalidMediaInput("unsupported mime type: " + mimeType)
	}
	return nil
}

// translateTransportError maps connection-level failures to the offline
// error so the caller gets an actionable message instead of a raw dial error
func translateTransportError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(apperrors.AppError); ok {
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return apperrors.ErrNetworkUnavailable()
	}
	return err
}
