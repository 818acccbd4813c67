package report

import "github.com/frahmantamala/time-tracking/internal/timerecord"

type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type SummaryResponse struct {
	Period  Period       `json:"period"`
	GroupBy string       `json:"group_by"`
	Data    []SummaryRow `json:"data"`
}

type DailyResponse struct {
	Date    string                   `json:"date"`
	Records []*timerecord.TimeRecord `json:"records"`
}

// CSVResponse carries the export as an in-memory blob plus a suggested
// download name embedding type and date range.
type CSVResponse struct {
	CSVData  string `json:"csv_data"`
	Filename string `json:"filename"`
}
