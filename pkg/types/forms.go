package types

// IncidentForm is the intake form as posted by the browser.
type IncidentForm struct {
	PatientName string   `form:"patient_name"`
	PatientAge  int      `form:"patient_age"`
	Sector      string   `form:"sector"`
	Phase       string   `form:"phase"`
	Responsible string   `form:"responsible"`
	OccurredOn  string   `form:"occurred_on"`
	Categories  []string `form:"categories"`
	Suggestion  string   `form:"suggestion"`
}

type ActionForm struct {
	Status ActionStatus `form:"status"`
	Owner  string       `form:"owner"`
	DueOn  string       `form:"due_on"`
}

// ListFilterForm mirrors the query string of the incident list.
type ListFilterForm struct {
	Sector  string `form:"sector"`
	Patient string `form:"patient"`
	Start   string `form:"start"`
	End     string `form:"end"`
}

type ReportForm struct {
	Window string `form:"window"`
	Start  string `form:"start"`
	Kind   string `form:"kind"`
	Format string `form:"format"`
}
