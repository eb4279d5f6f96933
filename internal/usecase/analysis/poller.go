package analysis

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/dbmarquetti/notas-magicas/errors"
	"github.com/dbmarquetti/notas-magicas/pkg/ai"
)

// FileStatusGetter fetches the current state of an uploaded file
type FileStatusGetter interface {
	GetFile(ctx context.Context, name string) (*ai.FileRef, error)
}

// Poller waits for an uploaded file to finish server-side processing
type Poller struct {
	files       FileStatusGetter
	interval    time.Duration
	maxAttempts int
	logger      *zap.Logger
}

// NewPoller creates a poller with a fixed interval between status checks
func NewPoller(files FileStatusGetter, interval time.Duration, maxAttempts int, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 120
	}
	return &Poller{
		files:       files,
		interval:    interval,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// WaitUntilActive polls the file state until it becomes ACTIVE, reaches a
// terminal failure state, or the attempt budget runs out. Transient fetch
// errors count against the budget but do not abort the wait. The last
// observed state is carried into timeout and failure errors.
func (p *Poller) WaitUntilActive(ctx context.Context, ref *ai.FileRef) (*ai.FileRef, error) {
	if ref.State == ai.FileStateActive {
		return ref, nil
	}

	lastState := ref.State
	attempts := 0

	// maxAttempts counts status fetches, so allow maxAttempts-1 retries
	// after the first try.
	ticker := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.interval), uint64(p.maxAttempts-1)),
		ctx,
	)

	var active *ai.FileRef
	err := backoff.Retry(func() error {
		attempts++

		current, err := p.files.GetFile(ctx, ref.Name)
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("file status check failed",
					zap.String("file", ref.Name),
					zap.Int("attempt", attempts),
					zap.Error(err))
			}
			return err
		}

		lastState = current.State
		switch current.State {
		case ai.FileStateActive:
			active = current
			return nil
		case ai.FileStateProcessing:
			return errStillProcessing
		default:
			return backoff.Permanent(apperrors.ErrProcessingFailed(current.State))
		}
	}, ticker)

	if err != nil {
		if appErr, ok := err.(apperrors.AppError); ok {
			return nil, appErr
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, apperrors.ErrProcessingTimeout(lastState)
	}

	return active, nil
}

type stillProcessingError struct{}

func (stillProcessingError) Error() string { return "file still processing" }

var errStillProcessing = stillProcessingError{}
