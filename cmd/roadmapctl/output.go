package main

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/roadmap-aggregate-go/command"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap/planning"
)

var outputJSONAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type resultView struct {
	RoadmapID string   `json:"roadmapId"`
	Revision  uint64   `json:"revision"`
	CreatedID string   `json:"createdId,omitempty"`
	Events    []string `json:"events"`
	Attempts  int      `json:"attempts"`
}

type statsView struct {
	Timeframes         int            `json:"timeframes"`
	Initiatives        int            `json:"initiatives"`
	Items              int            `json:"items"`
	ItemsByStatus      map[string]int `json:"itemsByStatus"`
	InitiativesByLevel map[string]int `json:"initiativesByPriority"`
	CompletionPercent  float64        `json:"completionPercent"`
}

type roadmapView struct {
	Roadmap roadmap.RoadmapRecord `json:"roadmap"`
	Stats   statsView             `json:"stats"`
}

type roadmapSummaryView struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Owner      string `json:"owner"`
	Revision   uint64 `json:"revision"`
	Timeframes int    `json:"timeframes"`
}

type validationView struct {
	Valid      bool     `json:"valid"`
	Message    string   `json:"message"`
	Violations []string `json:"violations"`
}

type deletedView struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func newResultView(result command.Result) resultView {
	events := make([]string, 0, len(result.Events))
	for _, event := range result.Events {
		events = append(events, event.EventType())
	}

	return resultView{
		RoadmapID: result.Roadmap.ID(),
		Revision:  result.Roadmap.Revision(),
		CreatedID: result.CreatedID,
		Events:    events,
		Attempts:  result.Meta.RetryAttempts,
	}
}

func newRoadmapView(r roadmap.Roadmap) roadmapView {
	stats := roadmap.ComputeStats(r)

	return roadmapView{
		Roadmap: r.ToRecord(),
		Stats: statsView{
			Timeframes:         stats.Timeframes,
			Initiatives:        stats.Initiatives,
			Items:              stats.Items,
			ItemsByStatus:      stats.ItemsByStatus,
			InitiativesByLevel: stats.InitiativesByLevel,
			CompletionPercent:  stats.CompletionPercent,
		},
	}
}

func newValidationView(result planning.ValidationResult) validationView {
	violations := result.Violations
	if violations == nil {
		violations = []string{}
	}

	return validationView{Valid: result.Valid, Message: result.Message, Violations: violations}
}

// render writes value in the selected format. Text output is produced by text.
// YAML goes through the JSON encoding so both formats share the camelCase keys.
func (c *cli) render(value any, text func(w io.Writer)) error {
	switch c.output {
	case outputJSON:
		data, err := outputJSONAPI.MarshalIndent(value, "", "  ")
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(c.stdout, string(data))

		return err

	case outputYAML:
		data, err := outputJSONAPI.Marshal(value)
		if err != nil {
			return err
		}

		var generic any
		if err = outputJSONAPI.Unmarshal(data, &generic); err != nil {
			return err
		}

		encoder := yaml.NewEncoder(c.stdout)
		encoder.SetIndent(2)

		if err = encoder.Encode(generic); err != nil {
			return err
		}

		return encoder.Close()

	default:
		text(c.stdout)
		return nil
	}
}

func (c *cli) renderResult(result command.Result) error {
	view := newResultView(result)

	return c.render(view, func(w io.Writer) {
		_, _ = fmt.Fprintf(w, "roadmap %s at revision %d\n", view.RoadmapID, view.Revision)

		if view.CreatedID != "" {
			_, _ = fmt.Fprintf(w, "created %s\n", view.CreatedID)
		}

		if len(view.Events) > 0 {
			_, _ = fmt.Fprintf(w, "events: %s\n", strings.Join(view.Events, ", "))
		}
	})
}

func writeRoadmapTree(w io.Writer, r roadmap.Roadmap) {
	_, _ = fmt.Fprintf(w, "%s (%s)", r.Title(), r.ID())
	if r.Version() != "" {
		_, _ = fmt.Fprintf(w, " v%s", r.Version())
	}
	if r.Owner() != "" {
		_, _ = fmt.Fprintf(w, " owner %s", r.Owner())
	}
	_, _ = fmt.Fprintf(w, " revision %d\n", r.Revision())

	for _, timeframe := range r.Timeframes() {
		_, _ = fmt.Fprintf(w, "  [%d] %s (%s)\n", timeframe.Order(), timeframe.Name(), timeframe.ID())

		for _, initiative := range timeframe.Initiatives() {
			_, _ = fmt.Fprintf(w, "    - %s (%s) %s/%s\n",
				initiative.Title(), initiative.ID(), initiative.Category(), initiative.Priority())

			for _, item := range initiative.Items() {
				_, _ = fmt.Fprintf(w, "      * %s (%s) %s\n", item.Title(), item.ID(), item.Status())
			}
		}
	}
}

func writeNoteLine(w io.Writer, note roadmap.Note) {
	_, _ = fmt.Fprintf(w, "%s  %s  %s/%s", note.ID(), note.Title(), note.Category(), note.Priority())
	if note.Timeline() != "" {
		_, _ = fmt.Fprintf(w, "  %s", note.Timeline())
	}
	_, _ = fmt.Fprintln(w)
}
