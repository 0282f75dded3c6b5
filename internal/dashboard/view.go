package dashboard

import (
	"energy_forecast/internal/chart"
	"energy_forecast/internal/filter"
	"energy_forecast/internal/ingest"
	"energy_forecast/internal/metrics"
	"energy_forecast/internal/model"
	"energy_forecast/internal/nextday"
	"energy_forecast/internal/state"
)

// View is everything the dashboard page shows, derived from one state
// snapshot.
type View struct {
	File      *FileBadge      `json:"file"`
	Uploaded  bool            `json:"uploaded"`
	Busy      bool            `json:"busy"`
	Pending   string          `json:"pending,omitempty"`
	Model     ModelOption     `json:"model"`
	Models    []ModelOption   `json:"models"`
	Range     model.DateRange `json:"range"`
	PageSizes []int           `json:"page_sizes"`
	PageSize  int             `json:"page_size"`
	Page      int             `json:"page"`
	// TotalPages is 0 when nothing matches the filter.
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`

	Rows    []Row           `json:"rows"`
	Summary metrics.Summary `json:"summary"`
	NextDay *nextday.Result `json:"next_day,omitempty"`
	Charts  Charts          `json:"charts"`

	AcceptedCount   int `json:"accepted_count"`
	PredictionCount int `json:"prediction_count"`
	FilteredCount   int `json:"filtered_count"`

	CanUpload  bool `json:"can_upload"`
	CanPredict bool `json:"can_predict"`

	Notifications []Notification `json:"notifications"`
}

// FileBadge describes the selected dataset.
type FileBadge struct {
	Name string `json:"name"`
	Size int    `json:"size"`
	ingest.DatasetInfo
}

type ModelOption struct {
	ID       model.ModelID `json:"id"`
	Label    string        `json:"label"`
	Selected bool          `json:"selected"`
}

// Row is one table line. Difference is nil without a measured value;
// DifferencePct is also nil when the measured value is 0.
type Row struct {
	Date          model.Date `json:"date"`
	Real          *float64   `json:"real"`
	Predicted     float64    `json:"predicted"`
	Injected      *float64   `json:"injected"`
	Irradiation   *float64   `json:"irradiation"`
	Difference    *float64   `json:"difference"`
	DifferencePct *float64   `json:"difference_pct"`
	Synthetic     bool       `json:"synthetic"`
}

type Charts struct {
	Comparison chart.Config `json:"comparison"`
	Auxiliary  chart.Config `json:"auxiliary"`
}

// View derives the presentation data from the current state.
func (s *Service) View() View {
	v := BuildView(s.store.State())
	v.Notifications = s.recent.list()
	return v
}

// BuildView derives the presentation data from st. It is a pure function of st.
func BuildView(st state.State) View {
	filtered := filter.ByDateRange(st.Predictions, st.Range)
	page := filter.Paginate(filtered, st.PageSize, st.Page)
	total := filter.TotalPages(len(filtered), st.PageSize)

	v := View{
		Uploaded:        st.Uploaded,
		Busy:            st.Busy,
		Pending:         string(st.Pending),
		Model:           ModelOption{ID: st.Model, Label: st.Model.Label(), Selected: true},
		Models:          modelOptions(st.Model),
		Range:           st.Range,
		PageSizes:       append([]int(nil), filter.PageSizes...),
		PageSize:        st.PageSize,
		Page:            st.Page,
		TotalPages:      total,
		HasPrev:         st.Page > 1,
		HasNext:         st.Page < total,
		Rows:            rows(page),
		Summary:         metrics.Summarize(filtered, len(st.Predictions)),
		AcceptedCount:   len(st.AcceptedDates),
		PredictionCount: len(st.Predictions),
		FilteredCount:   len(filtered),
		CanUpload:       st.CanUpload(),
		CanPredict:      st.CanPredict(),
		Charts: Charts{
			Comparison: chart.Comparison(filtered),
			Auxiliary:  chart.Auxiliary(filtered),
		},
		Notifications: []Notification{},
	}
	if st.File != nil {
		v.File = &FileBadge{Name: st.File.Name, Size: st.File.Size(), DatasetInfo: st.File.Info}
	}
	if !st.Range.End.IsZero() {
		if res, ok := nextday.Lookup(st.Predictions, st.Range.End); ok {
			v.NextDay = &res
		}
	}
	return v
}

func modelOptions(selected model.ModelID) []ModelOption {
	ids := model.Models()
	opts := make([]ModelOption, len(ids))
	for i, id := range ids {
		opts[i] = ModelOption{ID: id, Label: id.Label(), Selected: id == selected}
	}
	return opts
}

func rows(records []model.PredictionRecord) []Row {
	out := make([]Row, len(records))
	for i, r := range records {
		row := Row{
			Date:        r.Date,
			Real:        r.Real,
			Predicted:   r.Predicted,
			Injected:    r.Injected,
			Irradiation: r.Irradiation,
			Synthetic:   r.Synthetic,
		}
		if d, ok := metrics.RecordDifference(r); ok {
			row.Difference = model.Float(d.Absolute)
			if d.PercentOK {
				row.DifferencePct = model.Float(d.Percent)
			}
		}
		out[i] = row
	}
	return out
}
