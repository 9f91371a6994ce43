// Package hedge implements the hedging scheduler: the policy that races a
// caller-supplied RPC closure across an ordered prefix of providers,
// launching a delayed second wave if the first wave has not produced a
// winner, and enforcing a hard overall deadline.
package hedge

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/aponysus/hedgedrpc/observe"
	"github.com/aponysus/hedgedrpc/policy"
	"github.com/aponysus/hedgedrpc/provider"
	"github.com/aponysus/hedgedrpc/stats"
)

// AttemptFunc performs one provider-bound attempt of a hedged call. It must
// honor ctx cancellation: once the scheduler cancels the group context, the
// attempt should stop doing I/O on the caller's behalf as soon as possible.
type AttemptFunc[T any] func(ctx context.Context, id provider.ID) (T, error)

type attemptResult[T any] struct {
	id    provider.ID
	val   T
	err   error
	start time.Time
	end   time.Time
	hedge bool
}

// Race runs a single hedged call over providers using cfg, recording
// outcomes in tracker and emitting lifecycle events to obs. providers is
// the client's full configured order; Race itself selects the prefix, so
// callers never need to slice it.
//
// cfg is expected to already be normalized (see policy.HedgeConfig.Normalize).
func Race[T any](ctx context.Context, providers []provider.ID, cfg policy.HedgeConfig, tracker stats.Tracker, obs observe.Observer, method string, call AttemptFunc[T]) (provider.ID, T, error) {
	var zero T

	if len(providers) == 0 || cfg.MaxProviders == 0 {
		return "", zero, NoProviders{}
	}

	maxP := cfg.MaxProviders
	if maxP > len(providers) {
		maxP = len(providers)
	}
	selected := providers[:maxP]

	initialN := cfg.InitialProviders
	if initialN < 1 {
		initialN = 1
	}
	if initialN > len(selected) {
		initialN = len(selected)
	}
	initial := selected[:initialN]
	reserve := selected[initialN:]

	start := time.Now()
	callID := uuid.NewString()

	groupCtx, cancelGroup := context.WithCancel(ctx)
	if cfg.OverallTimeout > 0 {
		groupCtx, cancelGroup = context.WithTimeout(ctx, cfg.OverallTimeout)
	}
	defer cancelGroup()

	results := make(chan attemptResult[T], len(selected))

	launch := func(id provider.ID, isHedge bool, attemptIdx int) {
		go func() {
			aStart := time.Now()
			val, err := call(groupCtx, id)
			aEnd := time.Now()
			obs.OnAttempt(ctx, method, observe.AttemptRecord{
				Provider:  id,
				Attempt:   attemptIdx,
				IsHedge:   isHedge,
				StartTime: aStart,
				EndTime:   aEnd,
				Err:       err,
			})
			select {
			case results <- attemptResult[T]{id: id, val: val, err: err, start: aStart, end: aEnd, hedge: isHedge}:
			case <-groupCtx.Done():
			}
		}()
	}

	obs.OnStart(ctx, method, append([]provider.ID(nil), initial...))
	for i, id := range initial {
		launch(id, false, i)
	}
	attemptsLaunched := len(initial)

	var hedgeTimerC <-chan time.Time
	hedgeFired := len(reserve) == 0
	if !hedgeFired {
		timer := time.NewTimer(cfg.HedgeAfter)
		defer timer.Stop()
		hedgeTimerC = timer.C
	}

	var failures []ProviderFailure
	var timelineAttempts []observe.AttemptRecord

	failAll := func(err error) (provider.ID, T, error) {
		tl := observe.Timeline{CallID: callID, Method: method, Start: start, End: time.Now(), Attempts: timelineAttempts, FinalErr: err}
		obs.OnFailure(ctx, method, tl)
		return "", zero, err
	}

	for {
		select {
		case res := <-results:
			rec := observe.AttemptRecord{Provider: res.id, IsHedge: res.hedge, StartTime: res.start, EndTime: res.end, Err: res.err}
			timelineAttempts = append(timelineAttempts, rec)

			if res.err == nil {
				cancelGroup()
				elapsed := res.end.Sub(start)
				tracker.RecordWin(res.id, elapsed)
				tl := observe.Timeline{CallID: callID, Method: method, Start: start, End: res.end, Winner: res.id, Attempts: timelineAttempts}
				obs.OnSuccess(ctx, method, tl)
				return res.id, res.val, nil
			}

			failures = append(failures, ProviderFailure{Provider: res.id, Err: res.err})

			if hedgeFired && len(failures) == len(selected) {
				for _, f := range failures {
					tracker.RecordError(f.Provider)
				}
				return failAll(&AllFailed{Failures: failures})
			}

		case <-hedgeTimerC:
			hedgeFired = true
			hedgeTimerC = nil
			obs.OnHedgeSpawn(ctx, method, append([]provider.ID(nil), reserve...))
			base := attemptsLaunched
			for i, id := range reserve {
				launch(id, true, base+i)
			}
			attemptsLaunched += len(reserve)

			if len(failures) == len(selected) {
				for _, f := range failures {
					tracker.RecordError(f.Provider)
				}
				return failAll(&AllFailed{Failures: failures})
			}

		case <-groupCtx.Done():
			for _, id := range selected {
				tracker.RecordError(id)
			}
			if errors.Is(groupCtx.Err(), context.DeadlineExceeded) {
				return failAll(&Timeout{Bound: cfg.OverallTimeout})
			}
			return failAll(ctx.Err())
		}
	}
}
