package dto

import "gearguard/pkg/types"

type DashboardStatsDTO struct {
	Equipment types.DashboardEquipmentStats `json:"equipment"`
	Requests  types.DashboardRequestStats   `json:"requests"`
	Teams     types.DashboardTeamStats      `json:"teams"`
}
