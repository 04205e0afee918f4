package analysis

import "time"

// Analysis is an AI-derived report over a batch of study sessions.
// Ratings are 1-100; for Stress, 1 is low and 100 is high.
type Analysis struct {
	Date          time.Time `json:"date"`
	Concentration int       `json:"concentration"`
	StudyCapacity int       `json:"studyCapacity"`
	Stress        int       `json:"stress"`
	Happiness     int       `json:"happiness"`
	Summary       string    `json:"summary"`
	Suggestions   []string  `json:"suggestions"`

	// TotalStudyDuration is the summed duration, in minutes, of the
	// sessions the report was built from.
	TotalStudyDuration int `json:"totalStudyDuration"`
	SessionCount       int `json:"sessionCount"`
}

// Wellbeing is the stress rating inverted so that higher is better.
func (a Analysis) Wellbeing() int {
	return 100 - a.Stress
}
