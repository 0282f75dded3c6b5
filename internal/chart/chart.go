// Package chart builds chart configurations in the JSON shape Chart.js
// consumes. Rendering happens in the browser.
package chart

import (
	"energy_forecast/internal/metrics"
	"energy_forecast/internal/model"
)

const (
	TypeLine = "line"
	TypeBar  = "bar"
)

const (
	colorActual      = "rgb(54, 162, 235)"
	colorForecast    = "rgb(255, 99, 132)"
	colorInjected    = "rgba(75, 192, 192, 0.6)"
	colorIrradiation = "rgb(255, 159, 64)"
)

type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one series. Nil points are rendered as gaps.
type Dataset struct {
	Label           string     `json:"label"`
	Type            string     `json:"type,omitempty"`
	Data            []*float64 `json:"data"`
	BorderColor     string     `json:"borderColor,omitempty"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	YAxisID         string     `json:"yAxisID,omitempty"`
	Fill            bool       `json:"fill"`
	SpanGaps        bool       `json:"spanGaps"`
	Tension         float64    `json:"tension,omitempty"`
}

type Options struct {
	Responsive          bool             `json:"responsive"`
	MaintainAspectRatio bool             `json:"maintainAspectRatio"`
	Plugins             Plugins          `json:"plugins"`
	Scales              map[string]Scale `json:"scales"`
}

type Plugins struct {
	Title  Title  `json:"title"`
	Legend Legend `json:"legend"`
}

type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text,omitempty"`
}

type Legend struct {
	Display  bool   `json:"display"`
	Position string `json:"position,omitempty"`
}

type Scale struct {
	Type        string `json:"type,omitempty"`
	Position    string `json:"position,omitempty"`
	BeginAtZero bool   `json:"beginAtZero"`
	Title       Title  `json:"title"`
}

// Comparison plots measured against forecast energy per day.
func Comparison(records []model.PredictionRecord) Config {
	labels := make([]string, len(records))
	actual := make([]*float64, len(records))
	forecast := make([]*float64, len(records))
	for i, r := range records {
		labels[i] = r.Date.String()
		if r.Real != nil {
			actual[i] = model.Float(*r.Real)
		}
		forecast[i] = model.Float(r.Predicted)
	}

	return Config{
		Type: TypeLine,
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{
				{Label: "Actual", Data: actual, BorderColor: colorActual, BackgroundColor: colorActual, Tension: 0.2},
				{Label: "Forecast", Data: forecast, BorderColor: colorForecast, BackgroundColor: colorForecast, Tension: 0.2},
			},
		},
		Options: Options{
			Responsive: true,
			Plugins: Plugins{
				Title:  Title{Display: true, Text: "Actual vs forecast energy"},
				Legend: Legend{Display: true, Position: "top"},
			},
			Scales: map[string]Scale{
				"x": {Title: Title{Display: true, Text: "Date"}},
				"y": {BeginAtZero: true, Title: Title{Display: true, Text: "kWh"}},
			},
		},
	}
}

// Auxiliary plots injected energy as bars with irradiation on a second axis.
// Records without an injected value are drawn with metrics.Placeholder.
func Auxiliary(records []model.PredictionRecord) Config {
	labels := make([]string, len(records))
	injected := make([]*float64, len(records))
	irradiation := make([]*float64, len(records))
	synthetic := false
	for i, r := range records {
		labels[i] = r.Date.String()
		if r.Injected != nil {
			injected[i] = model.Float(*r.Injected)
		} else {
			injected[i] = model.Float(metrics.Placeholder(r))
		}
		if r.Irradiation != nil {
			irradiation[i] = model.Float(*r.Irradiation)
		}
		synthetic = synthetic || r.Synthetic
	}

	title := "Injected energy and irradiation"
	if synthetic {
		title += " (estimates)"
	}

	return Config{
		Type: TypeBar,
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{
				{Label: "Injected energy", Data: injected, BackgroundColor: colorInjected, YAxisID: "y"},
				{Label: "Irradiation", Type: TypeLine, Data: irradiation, BorderColor: colorIrradiation, BackgroundColor: colorIrradiation, YAxisID: "y1", Tension: 0.2},
			},
		},
		Options: Options{
			Responsive: true,
			Plugins: Plugins{
				Title:  Title{Display: true, Text: title},
				Legend: Legend{Display: true, Position: "top"},
			},
			Scales: map[string]Scale{
				"x":  {Title: Title{Display: true, Text: "Date"}},
				"y":  {Position: "left", BeginAtZero: true, Title: Title{Display: true, Text: "kWh"}},
				"y1": {Position: "right", BeginAtZero: true, Title: Title{Display: true, Text: "W/m²"}},
			},
		},
	}
}
