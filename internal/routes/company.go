package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runCompanyRouter(secureGroup *echo.Group, companyService *services.CompanyService, logger *zap.Logger) {
	companyCtrl := controllers.NewCompanyController(companyService, logger)

	secureGroup.GET("/companies", companyCtrl.GetCompanies)
	secureGroup.GET("/companies/:id", companyCtrl.FindCompany)
	secureGroup.PATCH("/companies/:id", companyCtrl.UpdateCompany)
	secureGroup.DELETE("/companies/:id", companyCtrl.DeleteCompany)
}
