package catalog

import (
	"log/slog"
	"strings"

	"vwheritage/internal/model"
)

const (
	descriptionColumn    = "DESCRIPTION"
	descriptionSeparator = "$"
	descriptionSegments  = 5

	lineBreak   = "\r\n"
	breakMarker = "<br>"
)

type segmentRule struct {
	index  int
	assign func(r model.Record, segment string)
}

// descriptionRules run highest index first. A rule fires when its segment is
// present, so segment N being set implies every lower one is set too.
var descriptionRules = []segmentRule{
	{index: 4, assign: func(r model.Record, s string) {
		metrics := strings.ReplaceAll(s, "'", "&#39;")
		if len(metrics) > 1 {
			// the first line is always empty
			r["metrics"] = strings.Split(metrics, lineBreak)[1:]
		}
	}},
	{index: 3, assign: func(r model.Record, s string) {
		r["fittinginfo"] = strings.ReplaceAll(s, lineBreak, breakMarker)
	}},
	{index: 2, assign: func(r model.Record, s string) {
		r["quality"] = strings.ReplaceAll(s, lineBreak, "")
	}},
	{index: 1, assign: func(r model.Record, s string) {
		r["description"] = strings.ReplaceAll(s, lineBreak, breakMarker)
	}},
	{index: 0, assign: func(r model.Record, s string) {
		applications := strings.Split(s, lineBreak)
		if n := len(applications); n > 0 && applications[n-1] == "" {
			applications = applications[:n-1]
		}
		r["applications"] = applications
	}},
}

// SplitDescription expands the vendor's "$"-separated description blob into
// applications, description, quality, fittinginfo and metrics. The raw
// text is kept under originaldescription.
func SplitDescription(logger *slog.Logger, r model.Record, raw string) {
	r["originaldescription"] = raw
	delete(r, descriptionColumn)

	segments := strings.Split(raw, descriptionSeparator)
	if len(segments) > descriptionSegments {
		logger.Warn("description has more segments than expected",
			"sku", r.String("sku"), "segments", len(segments))
	}

	for _, rule := range descriptionRules {
		if rule.index < len(segments) {
			rule.assign(r, segments[rule.index])
		}
	}
}
