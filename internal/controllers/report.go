package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/services"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

const reportTimeoutSeconds = 30

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func wantsXLSX(ctx echo.Context) bool {
	return strings.EqualFold(ctx.QueryParam("format"), "xlsx")
}

func (c *ReportController) GetRequestReport(ctx echo.Context) error {
	filter, err := parseRequestFilter(ctx.Request().URL.Query())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	reqCtx, cancel := utils.ContextWithTimeout(ctx, reportTimeoutSeconds)
	defer cancel()

	data, err := c.reportService.GetRequestReport(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Debug("GetRequestReport: report built", zap.Int("rows", len(data)), zap.Bool("xlsx", wantsXLSX(ctx)))

	if wantsXLSX(ctx) {
		rows := make([][]interface{}, 0, len(data))
		for _, item := range data {
			rows = append(rows, requestRow(item))
		}
		return c.respondWithXLSX(ctx, "Requests", "requests", requestReportHeaders, rows)
	}
	return utils.SuccessResponse(ctx, data, "Request report built", http.StatusOK, uint64(len(data)))
}

func (c *ReportController) GetEquipmentReport(ctx echo.Context) error {
	query := ctx.Request().URL.Query()
	filter := types.EquipmentFilter{
		Category: utils.QueryString(query, "category"),
		Status:   utils.QueryString(query, "status"),
	}
	reqCtx, cancel := utils.ContextWithTimeout(ctx, reportTimeoutSeconds)
	defer cancel()

	data, err := c.reportService.GetEquipmentReport(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if wantsXLSX(ctx) {
		rows := make([][]interface{}, 0, len(data))
		for _, item := range data {
			rows = append(rows, equipmentRow(item))
		}
		return c.respondWithXLSX(ctx, "Equipment", "equipment", equipmentReportHeaders, rows)
	}
	return utils.SuccessResponse(ctx, data, "Equipment report built", http.StatusOK, uint64(len(data)))
}

var requestReportHeaders = []string{
	"№", "Subject", "Equipment", "Type", "Priority", "Status", "Team", "Technician",
	"Scheduled", "Completed", "Duration (h)", "Created",
}

var equipmentReportHeaders = []string{
	"№", "Name", "Serial number", "Category", "Department", "Location", "Status", "Health",
	"Technician", "Last maintenance", "Next scheduled",
}

const reportDateFormat = "02.01.2006"

func formatDate(t null.Time) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(reportDateFormat)
}

func requestRow(item entities.MaintenanceRequest) []interface{} {
	var equipment, team, technician, duration string
	if item.Equipment != nil {
		equipment = item.Equipment.Name
	}
	if item.Team != nil {
		team = item.Team.Name
	}
	if item.AssignedTechnician != nil {
		technician = item.AssignedTechnician.Name
	}
	if item.Duration.Valid {
		duration = fmt.Sprint(item.Duration.Int)
	}
	return []interface{}{
		item.ID, item.Subject, equipment, item.MaintenanceType, item.Priority, item.Status, team, technician,
		formatDate(item.ScheduledDate), formatDate(item.CompletedDate), duration, item.CreatedAt.Format(reportDateFormat),
	}
}

func equipmentRow(item entities.Equipment) []interface{} {
	var technician string
	if item.AssignedTechnician != nil {
		technician = item.AssignedTechnician.Name
	}
	return []interface{}{
		item.ID, item.Name, item.SerialNumber, item.Category, item.Department.String, item.Location.String,
		item.Status, item.Health, technician, formatDate(item.LastMaintenance), formatDate(item.NextScheduled),
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, sheet, name string, headers []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(sheet, "A1", lastHeader, style)

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
	}
	_ = f.SetColWidth(sheet, "B", "C", 30)
	_ = f.SetColWidth(sheet, "D", "L", 18)

	fileName := fmt.Sprintf("%s_report_%s.xlsx", name, time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
