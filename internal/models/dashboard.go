package models

// DashboardStats aggregates catalog and roster counters for the admin and
// student dashboards.
type DashboardStats struct {
	TotalPapers    int       `json:"totalPapers"`
	PastPapers     int       `json:"pastPapers"`
	ModelPapers    int       `json:"modelPapers"`
	TotalDownloads int       `json:"totalDownloads"`
	TotalStudents  int       `json:"totalStudents"`
	ActiveStudents int       `json:"activeStudents"`
	PopularPapers  []Paper   `json:"popularPapers"`
	RecentStudents []Student `json:"recentStudents"`
}
