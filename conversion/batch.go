package conversion

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/notargets/gopersa/loading"
)

// Result is the outcome of one item of a batch
type Result struct {
	Item     Item
	NumTimes int
	NumPts   int
	Started  time.Time
	Elapsed  time.Duration
	Err      error
}

type Report struct {
	Results []Result
}

func (r *Report) Failed() (failed []Result) {
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return
}

func (r *Report) Print() {
	for _, res := range r.Results {
		status := "ok"
		if res.Err != nil {
			status = res.Err.Error()
		}
		fmt.Printf("[%s]\t%d points\t%d times\t%v\t= %s\n",
			res.Item.Name, res.NumPts, res.NumTimes, res.Elapsed.Round(time.Millisecond), status)
	}
}

// Batch converts independent items, each binding its own stream. By default
// the first failure cancels the rest; with ContinueOnError every item runs
// and failures are only recorded in the report.
type Batch struct {
	Session         *Session
	Writer          loading.ZoneWriter
	Parallelism     int
	ContinueOnError bool
}

func (b *Batch) Run(ctx context.Context, items []Item) (report *Report, err error) {
	var (
		s   = b.Session
		par = b.Parallelism
	)
	if par < 1 {
		par = 1
	}
	report = &Report{Results: make([]Result, len(items))}
	if s.Metrics != nil {
		s.Metrics.BatchRunning.Set(1)
		defer s.Metrics.BatchRunning.Set(0)
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(par)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			res := &report.Results[i]
			res.Item = item
			if err := gCtx.Err(); err != nil {
				res.Err = err
				return nil
			}
			res.Started = s.Clock.Now()
			res.Err = b.runItem(item, res)
			res.Elapsed = s.Clock.Since(res.Started)
			if res.Err == nil {
				return nil
			}
			if s.Metrics != nil {
				s.Metrics.ZoneFailures.Inc()
			}
			if b.ContinueOnError {
				s.Logger.Warn("zone failed, continuing", zap.String("zone", item.Name), zap.Error(res.Err))
				return nil
			}
			return res.Err
		})
	}
	err = g.Wait()
	return
}

func (b *Batch) runItem(item Item, res *Result) (err error) {
	var (
		z *loading.Zone
	)
	if z, err = b.Session.Convert(item); err != nil {
		return
	}
	res.NumTimes, res.NumPts = z.NumTimes(), z.NumPoints()
	if b.Writer != nil {
		if err = b.Writer.WriteZone(z); err != nil {
			return errors.Wrapf(err, "zone %s: write", item.Name)
		}
	}
	if b.Session.Metrics != nil {
		b.Session.Metrics.ZonesConverted.Inc()
	}
	return
}
