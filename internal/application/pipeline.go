package application

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/openf1-tools/f1arc/internal/domain"
	"github.com/openf1-tools/f1arc/internal/ports"
)

// Dataset names double as upstream endpoint names; every output file is
// named <dataset>_all.csv.
const (
	DatasetSessions      = "sessions"
	DatasetMeetings      = "meetings"
	DatasetStints        = "stints"
	DatasetPit           = "pit"
	DatasetWeather       = "weather"
	DatasetStartingGrid  = "starting_grid"
	DatasetSessionResult = "session_result"
	DatasetRaceControl   = "race_control"
	DatasetLaps          = "laps"
)

// sessionDatasets are fetched per target session, keyed by session_key.
var sessionDatasets = []string{
	DatasetStints,
	DatasetPit,
	DatasetWeather,
	DatasetStartingGrid,
	DatasetSessionResult,
	DatasetRaceControl,
}

// Datasets returns the enabled datasets in output order.
func Datasets(includeMeetings, downloadLaps bool) []string {
	out := []string{DatasetSessions}
	if includeMeetings {
		out = append(out, DatasetMeetings)
	}
	out = append(out, sessionDatasets...)
	if downloadLaps {
		out = append(out, DatasetLaps)
	}
	return out
}

// Options configures a pipeline run.
type Options struct {
	Scope           domain.Scope
	IncludeMeetings bool
	DownloadLaps    bool
	StartYear       int
	EndYear         int // zero resolves to the clock's current UTC year
}

// Summary reports what a completed run covered.
type Summary struct {
	Seasons        []int
	TotalSessions  int
	TargetSessions int
	Outputs        []string
}

// Pipeline drives one archive run: discover seasons, fetch and persist
// sessions and meetings per season, then fetch every per-session dataset
// for the sessions selected by the scope. Fetch failures are tolerated per
// unit of work; sink write failures abort the run.
type Pipeline struct {
	fetcher ports.TableFetcher
	sinks   map[string]ports.TableSink
	opts    Options
	clock   ports.Clock
	logger  *zap.SugaredLogger
}

func NewPipeline(fetcher ports.TableFetcher, sinks map[string]ports.TableSink, opts Options, clock ports.Clock, logger *zap.SugaredLogger) *Pipeline {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Pipeline{
		fetcher: fetcher,
		sinks:   sinks,
		opts:    opts,
		clock:   clock,
		logger:  logger,
	}
}

// SeasonProgress reports the outcome of one season probe.
type SeasonProgress struct {
	Year    int
	HasData bool
}

// DiscoverSeasons probes [from, to] ascending and returns the years whose
// sessions endpoint has any data. Probe failures exclude the year and are
// never surfaced; a zero "to" defaults to the current UTC year. A non-nil
// onProbe observes every probed year in order.
func (p *Pipeline) DiscoverSeasons(ctx context.Context, from, to int, onProbe func(SeasonProgress)) []int {
	if to == 0 {
		to = p.clock.Now().UTC().Year()
	}

	var years []int
	for year := from; year <= to; year++ {
		hasData := false
		table, err := p.fetcher.Fetch(ctx, DatasetSessions, yearParams(year))
		if err != nil {
			p.logger.Debugw("season probe failed", "year", year, "error", err)
		} else if !table.Empty() {
			hasData = true
			years = append(years, year)
		}

		if onProbe != nil {
			onProbe(SeasonProgress{Year: year, HasData: hasData})
		}
	}
	return years
}

// Run executes the full pipeline and returns its summary. The returned
// error is either the no-seasons condition or a fatal sink write failure;
// every fetch failure below discovery is logged and skipped.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	summary := Summary{}

	summary.Seasons = p.DiscoverSeasons(ctx, p.opts.StartYear, p.opts.EndYear, nil)
	if len(summary.Seasons) == 0 {
		return summary, domain.ErrNoSeasons
	}
	p.logger.Infow("seasons detected", "years", summary.Seasons)

	for _, year := range summary.Seasons {
		if err := p.runSeason(ctx, year, &summary); err != nil {
			return summary, err
		}
	}

	summary.Outputs = p.producedOutputs()
	return summary, nil
}

func (p *Pipeline) runSeason(ctx context.Context, year int, summary *Summary) error {
	sessions, err := p.fetcher.Fetch(ctx, DatasetSessions, yearParams(year))
	if err != nil {
		// Sessions are foundational; without them the season yields nothing.
		p.logger.Warnw("sessions fetch failed, skipping season", "year", year, "error", err)
		return nil
	}

	if err := p.appendTo(DatasetSessions, sessions); err != nil {
		return err
	}
	summary.TotalSessions += sessions.Len()

	if p.opts.IncludeMeetings {
		if err := p.collectMeetings(ctx, year); err != nil {
			return err
		}
	}

	targets := domain.FilterSessions(sessions, p.opts.Scope)
	summary.TargetSessions += targets.Len()
	p.logger.Infow("season processed", "year", year, "sessions", sessions.Len(), "targets", targets.Len())

	for _, key := range targets.SessionKeys() {
		if err := p.collectSession(ctx, year, key); err != nil {
			return err
		}
	}
	return nil
}

// collectMeetings fetches the supplementary meetings dataset; its fetch
// failures are swallowed, its write failures are not.
func (p *Pipeline) collectMeetings(ctx context.Context, year int) error {
	meetings, err := p.fetcher.Fetch(ctx, DatasetMeetings, yearParams(year))
	if err != nil {
		p.logger.Warnw("meetings fetch failed", "year", year, "error", err)
		return nil
	}
	return p.appendTo(DatasetMeetings, meetings)
}

func (p *Pipeline) collectSession(ctx context.Context, year, key int) error {
	datasets := sessionDatasets
	if p.opts.DownloadLaps {
		datasets = append(datasets[:len(datasets):len(datasets)], DatasetLaps)
	}

	params := map[string]string{"session_key": strconv.Itoa(key)}
	for _, dataset := range datasets {
		if _, ok := p.sinks[dataset]; !ok {
			continue
		}
		table, err := p.fetcher.Fetch(ctx, dataset, params)
		if err != nil {
			p.logger.Warnw("endpoint fetch failed",
				"year", year,
				"session_key", key,
				"endpoint", dataset,
				"error", err,
			)
			continue
		}
		if err := p.appendTo(dataset, table); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) appendTo(dataset string, table domain.Table) error {
	sink, ok := p.sinks[dataset]
	if !ok {
		return nil
	}
	return errors.Wrapf(sink.Append(table), "aggregate %s", dataset)
}

func (p *Pipeline) producedOutputs() []string {
	var outputs []string
	for _, dataset := range Datasets(p.opts.IncludeMeetings, p.opts.DownloadLaps) {
		sink, ok := p.sinks[dataset]
		if ok && sink.Produced() {
			outputs = append(outputs, sink.Path())
		}
	}
	return outputs
}

func yearParams(year int) map[string]string {
	return map[string]string{"year": strconv.Itoa(year)}
}
