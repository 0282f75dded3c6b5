// Package dashboard drives the forecast session: it forwards datasets to the
// prediction service, keeps the results in the state store and derives the
// view the presentation layer renders.
package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"energy_forecast/internal/filter"
	"energy_forecast/internal/forecast"
	"energy_forecast/internal/ingest"
	"energy_forecast/internal/metrics"
	"energy_forecast/internal/model"
	"energy_forecast/internal/state"
)

var (
	// ErrRemote wraps every failure reported by the prediction service.
	ErrRemote          = errors.New("prediction service request failed")
	ErrInvalidPageSize = errors.New("invalid page size")
)

// PredictionService is the subset of forecast.Client the dashboard needs.
type PredictionService interface {
	SubmitDataset(ctx context.Context, filename string, r io.Reader) (forecast.UploadResult, error)
	FetchPredictions(ctx context.Context, id model.ModelID) ([]model.PredictionRecord, error)
}

type Service struct {
	client    PredictionService
	store     *state.Store
	logger    zerolog.Logger
	now       func() time.Time
	recent    recent
	genMu     sync.Mutex
	gen       metrics.Generator
	notifyMu  sync.RWMutex
	notifiers []Notifier
}

type Option func(*Service)

// WithStore shares an existing store instead of creating one.
func WithStore(s *state.Store) Option {
	return func(svc *Service) { svc.store = s }
}

// WithGenerator sets the source for synthetic injected/irradiation values.
func WithGenerator(g metrics.Generator) Option {
	return func(svc *Service) { svc.gen = g }
}

// WithSeed seeds the synthetic value generator. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(svc *Service) { svc.gen = metrics.NewGenerator(seed) }
}

func WithNotifier(n Notifier) Option {
	return func(svc *Service) { svc.notifiers = append(svc.notifiers, n) }
}

func WithLogger(l zerolog.Logger) Option {
	return func(svc *Service) { svc.logger = l }
}

// WithClock replaces time.Now for notification timestamps.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

func NewService(client PredictionService, opts ...Option) (*Service, error) {
	if client == nil {
		return nil, errors.New("prediction service client is nil")
	}
	svc := &Service{
		client: client,
		logger: log.With().Str("component", "dashboard").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.store == nil {
		svc.store = state.NewStore()
	}
	if svc.gen == nil {
		svc.gen = metrics.NewGenerator(0)
	}
	return svc, nil
}

// AddNotifier registers n after construction.
func (s *Service) AddNotifier(n Notifier) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.notifiers = append(s.notifiers, n)
}

// Subscribe registers l for state changes.
func (s *Service) Subscribe(l state.Listener) {
	s.store.Subscribe(l)
}

// State returns the current session snapshot.
func (s *Service) State() state.State {
	return s.store.State()
}

// SelectFile stores a dataset for upload after checking it parses as CSV.
// A rejected file leaves the previous selection in place.
func (s *Service) SelectFile(name string, data []byte) (state.State, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if len(data) == 0 || name == "" || name == "." {
		s.notify(LevelError, titleFileRequired, MsgFileRequired)
		return s.store.State(), state.ErrNoFile
	}
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		s.notify(LevelError, titleUploadFailed, MsgUploadFailed)
		return s.store.State(), fmt.Errorf("%w: %s is not a .csv file", ingest.ErrNotCSV, name)
	}

	info, err := ingest.InspectCSV(bytes.NewReader(data))
	if err != nil {
		s.logger.Warn().Err(err).Str("file", name).Msg("rejected dataset")
		s.notify(LevelError, titleUploadFailed, MsgUploadFailed)
		return s.store.State(), err
	}

	st, err := s.store.Select(state.File{Name: name, Data: data, Info: info})
	if err != nil {
		s.logger.Debug().Err(err).Str("file", name).Msg("dataset not selected")
		return st, err
	}
	s.logger.Info().
		Str("file", name).
		Int("rows", info.Rows).
		Int("bytes", len(data)).
		Msg("dataset selected")
	return st, nil
}

// SelectModel changes the model used by the next Predict.
func (s *Service) SelectModel(raw string) (state.State, error) {
	id, err := model.ParseModelID(raw)
	if err != nil {
		return s.store.State(), err
	}
	return s.store.Dispatch(state.ModelSelected{Model: id}), nil
}

// Upload submits the selected dataset. Failures are logged and notified; the
// session stays usable and nothing is retried.
func (s *Service) Upload(ctx context.Context) (forecast.UploadResult, error) {
	st, err := s.store.Begin(state.OpUpload)
	if err != nil {
		if errors.Is(err, state.ErrNoFile) {
			s.notify(LevelError, titleFileRequired, MsgFileRequired)
		}
		return forecast.UploadResult{}, err
	}

	started := time.Now()
	res, err := s.client.SubmitDataset(ctx, st.File.Name, bytes.NewReader(st.File.Data))
	if err != nil {
		s.logger.Error().Err(err).Str("file", st.File.Name).Msg("upload failed")
		s.store.Dispatch(state.UploadFailed{Err: err})
		s.notify(LevelError, titleUploadFailed, MsgUploadFailed)
		return forecast.UploadResult{}, errors.Join(ErrRemote, err)
	}

	s.logger.Info().
		Str("file", st.File.Name).
		Int("accepted_dates", res.AcceptedDateCount).
		Dur("elapsed", time.Since(started)).
		Msg("dataset uploaded")
	s.store.Dispatch(state.UploadSucceeded{AcceptedDates: res.AcceptedDates})
	s.notify(LevelSuccess, titleUploadOK, uploadOKMessage(res.AcceptedDateCount))
	return res, nil
}

// Predict fetches the selected model's predictions and fills in synthetic
// injected/irradiation values where the service left them out.
func (s *Service) Predict(ctx context.Context) ([]model.PredictionRecord, error) {
	st, err := s.store.Begin(state.OpPredict)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrNoFile):
			s.notify(LevelError, titleFileRequired, MsgFileRequired)
		case errors.Is(err, state.ErrNotUploaded):
			s.notify(LevelError, titlePredictError, MsgPredictFailed)
		}
		return nil, err
	}

	started := time.Now()
	records, err := s.client.FetchPredictions(ctx, st.Model)
	if err != nil {
		s.logger.Error().Err(err).Str("model", string(st.Model)).Msg("prediction failed")
		s.store.Dispatch(state.PredictFailed{Err: err})
		s.notify(LevelError, titlePredictError, MsgPredictFailed)
		return nil, errors.Join(ErrRemote, err)
	}

	s.genMu.Lock()
	records = metrics.Enrich(records, s.gen)
	s.genMu.Unlock()

	s.logger.Info().
		Str("model", string(st.Model)).
		Int("records", len(records)).
		Dur("elapsed", time.Since(started)).
		Msg("predictions loaded")
	s.store.Dispatch(state.PredictSucceeded{Records: records})
	s.notify(LevelSuccess, titlePredictOK, predictOKMessage(len(records), st.Model))
	return records, nil
}

// SetRange applies a date filter and returns to the first page.
func (s *Service) SetRange(rng model.DateRange) state.State {
	return s.store.Dispatch(state.FilterChanged{Range: rng})
}

// SetPageSize accepts only the sizes in filter.PageSizes.
func (s *Service) SetPageSize(n int) (state.State, error) {
	if !filter.ValidPageSize(n) {
		return s.store.State(), fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	return s.store.Dispatch(state.PageSizeChanged{PageSize: n}), nil
}

func (s *Service) SetPage(n int) state.State {
	return s.store.Dispatch(state.PageChanged{Page: n})
}

// Filtered returns the prediction records inside the current date range.
func (s *Service) Filtered() []model.PredictionRecord {
	st := s.store.State()
	return filter.ByDateRange(st.Predictions, st.Range)
}

// Notifications returns the most recent notifications, newest first.
func (s *Service) Notifications() []Notification {
	return s.recent.list()
}

func (s *Service) notify(level Level, title, message string) {
	n := Notification{
		ID:      uuid.New(),
		Level:   level,
		Title:   title,
		Message: message,
		Time:    s.now().UTC(),
	}
	s.recent.add(n)

	s.notifyMu.RLock()
	notifiers := append([]Notifier(nil), s.notifiers...)
	s.notifyMu.RUnlock()
	for _, nt := range notifiers {
		nt.Notify(n)
	}
}
