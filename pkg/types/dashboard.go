package types

type DashboardEquipmentStats struct {
	Total         int64   `json:"total"`
	Critical      int64   `json:"critical"`
	AverageHealth float64 `json:"averageHealth"`
}

type DashboardRequestStats struct {
	Total          int64 `json:"total"`
	New            int64 `json:"new"`
	InProgress     int64 `json:"inProgress"`
	Repaired       int64 `json:"repaired"`
	Completed      int64 `json:"completed"`
	CompletionRate int64 `json:"completionRate"`
}

type DashboardTeamStats struct {
	Total int64 `json:"total"`
}
