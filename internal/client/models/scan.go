package models

import "encoding/json"

// ScanProgress is the state of one scanning job.
type ScanProgress struct {
	ID                int64  `json:"id"`
	StartDate         string `json:"startDate"`
	InProgress        bool   `json:"inProgress"`
	IsCompleted       bool   `json:"isCompleted"`
	TotalIpsCount     int    `json:"totalIpsCount"`
	ProcessedIpsCount int    `json:"processedIpsCount"`
	SuccessIpsCount   int    `json:"successIpsCount"`
	ErrorIpsCount     int    `json:"errorIpsCount"`
	NotFoundIpsCount  int    `json:"notFoundIpsCount"`
	EventsCount       int    `json:"eventsCount"`
}

// Percent returns processed/total in the range 0..100.
func (s ScanProgress) Percent() float64 {
	if s.TotalIpsCount <= 0 {
		return 0
	}
	p := float64(s.ProcessedIpsCount) * 100 / float64(s.TotalIpsCount)
	if p > 100 {
		return 100
	}
	return p
}

// ScanInfo is the answer of a scanning command. The API replies either with
// a JSON object (usually a ScanProgress) or with a line of text.
type ScanInfo struct {
	Text string
	Data map[string]any
}

// Empty reports whether the server sent nothing.
func (s ScanInfo) Empty() bool {
	return s.Text == "" && len(s.Data) == 0
}

// Progress decodes Data as a ScanProgress. ok is false when Data does not
// look like one.
func (s ScanInfo) Progress() (p ScanProgress, ok bool) {
	if s.Data == nil {
		return p, false
	}
	if _, has := s.Data["totalIpsCount"]; !has {
		if _, has := s.Data["inProgress"]; !has {
			return p, false
		}
	}
	b, err := json.Marshal(s.Data)
	if err != nil {
		return p, false
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, false
	}
	return p, true
}
