// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// Backoff retries calls to the extraction service with exponentially growing
// delays. The zero value is not usable; Attempts must be at least 1.
type Backoff struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration // 0 means uncapped
	Logger    *slog.Logger
}

// NewBackoff returns a Backoff sized from config.MaxRetries.
func NewBackoff(config *Config, baseDelay time.Duration, logger *slog.Logger) Backoff {
	return Backoff{
		Attempts:  config.MaxRetries,
		BaseDelay: baseDelay,
		MaxDelay:  config.Timeout,
		Logger:    logger,
	}
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err so that Do returns it without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do calls op until it succeeds, returns a Permanent error, the attempts are
// used up or ctx is done. op receives the 1-based attempt number. The error of
// the last attempt is returned unwrapped.
func (b Backoff) Do(ctx context.Context, op func(attempt int) error) error {
	if b.Attempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attempt := 0
	return retry.Do(ctx, b.policy(), func(ctx context.Context) error {
		attempt++
		err := op(attempt)
		if err == nil {
			if attempt > 1 {
				logger.Debug("extraction call succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		var permanent *permanentError
		if errors.As(err, &permanent) {
			return permanent.err
		}
		if attempt < b.Attempts {
			logger.Debug("extraction call failed, retrying", "attempt", attempt, "of", b.Attempts, "err", err)
		}
		return retry.RetryableError(err)
	})
}

// policy is BaseDelay * 2^(attempt-1) between attempts, capped at MaxDelay,
// for Attempts-1 retries.
func (b Backoff) policy() retry.Backoff {
	policy := retry.NewExponential(max(b.BaseDelay, time.Nanosecond))
	if b.MaxDelay > 0 {
		policy = retry.WithCappedDuration(b.MaxDelay, policy)
	}
	return retry.WithMaxRetries(uint64(b.Attempts-1), policy)
}
