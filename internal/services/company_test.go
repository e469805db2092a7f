package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	"gearguard/pkg/utils"
)

func TestCompanyService(t *testing.T) {
	env := newTestEnv()
	svc := NewCompanyService(env.companies, env.cache, env.logger)
	ctx := context.Background()
	require.NoError(t, env.companies.Create(ctx, nil, &entities.Company{ID: "c-1", Name: "Acme", Location: null.StringFrom("Plant 1")}))
	require.NoError(t, env.companies.Create(ctx, nil, &entities.Company{ID: "c-2", Name: "Globex"}))
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	manager := env.addUser("manager", "c-1", constants.RoleManager)

	companies, err := svc.ListCompanies(asActor(manager))
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme", companies[0].Name)

	_, err = svc.FindCompany(asActor(admin), "c-2")
	requireHTTPError(t, err, http.StatusNotFound, "Company not found")

	_, err = svc.UpdateCompany(asActor(manager), "c-1", dto.UpdateCompanyDTO{Name: utils.ToPtr("Acme 2")})
	requireHTTPError(t, err, http.StatusForbidden, "Only ADMIN can update the company")

	_, err = svc.UpdateCompany(asActor(admin), "c-1", dto.UpdateCompanyDTO{Name: utils.ToPtr("  ")})
	requireHTTPError(t, err, http.StatusBadRequest, "Company name cannot be empty")

	updated, err := svc.UpdateCompany(asActor(admin), "c-1", dto.UpdateCompanyDTO{Name: utils.ToPtr("Acme Corp"), Location: utils.ToPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.False(t, updated.Location.Valid)

	err = svc.DeleteCompany(asActor(admin), "c-2")
	requireHTTPError(t, err, http.StatusNotFound, "Company not found")

	require.NoError(t, env.cacheStore.Set(ctx, "equipment:c-1", "[]", 0))
	require.NoError(t, svc.DeleteCompany(asActor(admin), "c-1"))
	assert.False(t, env.cacheStore.has("equipment:c-1"))

	companies, err = svc.ListCompanies(asActor(admin))
	require.NoError(t, err)
	assert.Empty(t, companies)
}
