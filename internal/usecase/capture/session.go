// Package capture coordinates a live listening session: it owns the
// listening state, accumulates recognized speech and keeps the recognizer
// running across the silence timeouts recognition engines impose.
package capture

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/dbmarquetti/notas-magicas/errors"
)

// Recognizer is a continuous speech-to-text engine. Engines stop on their
// own after a stretch of silence, so the session restarts them while the
// user still wants to listen.
type Recognizer interface {
	Start(ctx context.Context) error
	Stop()
}

// Recorder captures the raw audio alongside recognition. Stop blocks until
// the device is released and the final bytes are flushed.
type Recorder interface {
	Start(ctx context.Context) error
	Stop() (data []byte, mimeType string, err error)
}

// Recognition error kinds reported by engines
const (
	RecognitionErrNotAllowed = "not-allowed"
	RecognitionErrNoSpeech   = "no-speech"
	RecognitionErrNetwork    = "network"
	RecognitionErrAborted    = "aborted"
)

// Session is a single live capture session. The recognizer driver feeds it
// through HandleResult, HandleEnd and HandleError.
type Session struct {
	recognizer Recognizer
	recorder   Recorder
	logger     *zap.Logger

	listening atomic.Bool

	mu        sync.Mutex
	chunks    []string
	lastErr   error
	startedAt time.Time
	recording []byte
	mimeType  string
}

// NewSession creates a capture session. recorder may be nil for a
// transcript-only session.
func NewSession(recognizer Recognizer, recorder Recorder, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{recognizer: recognizer, recorder: recorder, logger: logger}
}

// Start begins listening and recording. State from any previous run is
// discarded. A permission failure from either device maps to the microphone
// error and leaves nothing running.
func (s *Session) Start(ctx context.Context) error {
	if !s.listening.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	s.chunks = nil
	s.lastErr = nil
	s.recording = nil
	s.mimeType = ""
	s.startedAt = time.Now()
	s.mu.Unlock()

	if s.recorder != nil {
		if err := s.recorder.Start(ctx); err != nil {
			s.listening.Store(false)
			return apperrors.ErrMicrophonePermissionDenied()
		}
	}

	if err := s.recognizer.Start(ctx); err != nil {
		s.listening.Store(false)
		if s.recorder != nil {
			s.recorder.Stop()
		}
		return apperrors.ErrMicrophonePermissionDenied()
	}

	return nil
}

// Stop ends the session. The listening flag is cleared before the engine is
// stopped so the end callback does not restart it; the recorder is stopped
// last and its flush is waited on, releasing the capture device.
func (s *Session) Stop() {
	if !s.listening.CompareAndSwap(true, false) {
		return
	}
	s.recognizer.Stop()

	if s.recorder != nil {
		data, mimeType, err := s.recorder.Stop()
		if err != nil {
			s.logger.Warn("recorder flush failed", zap.Error(err))
			return
		}
		s.mu.Lock()
		s.recording = data
		s.mimeType = mimeType
		s.mu.Unlock()
	}
}

// Elapsed returns how long the session has been running
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startedAt.IsZero() {
		return 0
	}
	return time.Since(s.startedAt)
}

// IsListening reports whether the session is currently capturing
func (s *Session) IsListening() bool {
	return s.listening.Load()
}

// HandleResult appends a finalized chunk of recognized speech
func (s *Session) HandleResult(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.mu.Lock()
	s.chunks = append(s.chunks, text)
	s.mu.Unlock()
}

// HandleEnd is called when the engine stops on its own. While the session
// still wants to listen the engine is restarted; a deliberate Stop leaves it
// down.
func (s *Session) HandleEnd(ctx context.Context) {
	if !s.listening.Load() {
		return
	}

	if err := s.recognizer.Start(ctx); err != nil {
		s.logger.Warn("failed to restart recognition after silence", zap.Error(err))
		s.listening.Store(false)
		s.mu.Lock()
		s.lastErr = apperrors.ErrRecognitionNetwork(err)
		s.mu.Unlock()
	}
}

// HandleError records an engine error. Silence reports are expected during
// a long meeting and are ignored; the subsequent end callback restarts the
// engine. Permission and network failures end the session.
func (s *Session) HandleError(kind string, err error) {
	switch kind {
	case RecognitionErrNoSpeech, RecognitionErrAborted:
		return
	case RecognitionErrNotAllowed:
		s.listening.Store(false)
		s.mu.Lock()
		s.lastErr = apperrors.ErrMicrophonePermissionDenied()
		s.mu.Unlock()
	case RecognitionErrNetwork:
		s.listening.Store(false)
		s.mu.Lock()
		s.lastErr = apperrors.ErrRecognitionNetwork(err)
		s.mu.Unlock()
	default:
		s.logger.Warn("recognition error", zap.String("kind", kind), zap.Error(err))
	}
}

// Transcript returns the speech captured so far as a single text
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.chunks, " ")
}

// Finish stops the session and returns the full transcript. An empty
// capture is an error; a fatal engine error recorded during the session
// takes precedence.
func (s *Session) Finish() (string, error) {
	s.Stop()

	s.mu.Lock()
	err := s.lastErr
	text := strings.Join(s.chunks, " ")
	s.mu.Unlock()

	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", apperrors.ErrNoSpeechDetected()
	}
	return text, nil
}

// Recording stops the session and returns the recorded audio bytes, flushed
// and ready to submit for analysis. An empty recording is an error.
func (s *Session) Recording() ([]byte, string, error) {
	s.Stop()

	s.mu.Lock()
	data := s.recording
	mimeType := s.mimeType
	s.mu.Unlock()

	if len(data) == 0 {
		return nil, "", apperrors.ErrInvalidMediaInput("empty recording")
	}
	return data, mimeType, nil
}
