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

func TestTeamService_CreateWithMembers(t *testing.T) {
	env := newTestEnv()
	svc := env.teamService()
	manager := env.addUser("manager", "c-1", constants.RoleManager)
	tech := env.addUser("tech", "c-1", constants.RoleTechnician)
	outsider := env.addUser("outsider", "c-2", constants.RoleTechnician)

	_, err := svc.CreateTeam(asActor(manager), dto.CreateTeamDTO{Name: "Night shift", MemberIDs: []string{outsider.ID}})
	requireHTTPError(t, err, http.StatusNotFound, "User not found")

	team, err := svc.CreateTeam(asActor(manager), dto.CreateTeamDTO{
		Name:        "Mechanics",
		Description: utils.ToPtr("Heavy machinery"),
		MemberIDs:   []string{tech.ID, tech.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "c-1", team.CompanyID)
	assert.Equal(t, null.StringFrom("Heavy machinery"), team.Description)
	require.Len(t, team.Members, 1)
	assert.Equal(t, tech.ID, team.Members[0].UserID)
	assert.Equal(t, constants.DefaultTeamMemberRole, team.Members[0].Role)
}

func TestTeamService_Members(t *testing.T) {
	env := newTestEnv()
	svc := env.teamService()
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	tech := env.addUser("tech", "c-1", constants.RoleTechnician)

	team, err := svc.CreateTeam(asActor(admin), dto.CreateTeamDTO{Name: "Electrical"})
	require.NoError(t, err)

	withMember, err := svc.AddMember(asActor(admin), team.ID, dto.AddTeamMemberDTO{UserID: tech.ID, Role: utils.ToPtr("Lead")})
	require.NoError(t, err)
	require.Len(t, withMember.Members, 1)
	assert.Equal(t, "Lead", withMember.Members[0].Role)

	_, err = svc.AddMember(asActor(admin), team.ID, dto.AddTeamMemberDTO{UserID: tech.ID})
	requireHTTPError(t, err, http.StatusConflict, "Member already in team")

	err = svc.RemoveMember(asActor(admin), team.ID, dto.RemoveTeamMemberDTO{MemberID: withMember.Members[0].ID})
	require.NoError(t, err)

	err = svc.RemoveMember(asActor(admin), team.ID, dto.RemoveTeamMemberDTO{MemberID: withMember.Members[0].ID})
	requireHTTPError(t, err, http.StatusNotFound, "Member not found")
}

func TestTeamService_DetailAndCache(t *testing.T) {
	env := newTestEnv()
	svc := env.teamService()
	admin := env.addUser("admin", "c-1", constants.RoleAdmin)
	employee := env.addUser("employee", "c-1", constants.RoleEmployee)
	ctx := context.Background()

	team, err := svc.CreateTeam(asActor(admin), dto.CreateTeamDTO{Name: "Hydraulics"})
	require.NoError(t, err)
	require.NoError(t, env.requests.Create(ctx, nil, &entities.MaintenanceRequest{
		ID: "r-1", CompanyID: "c-1", EquipmentID: "eq-1", AssignedTeam: null.StringFrom(team.ID), Status: constants.RequestStatusNew,
	}))

	detail, err := svc.FindTeam(asActor(employee), team.ID)
	require.NoError(t, err)
	require.Len(t, detail.Requests, 1)
	assert.Equal(t, "r-1", detail.Requests[0].ID)

	teams, err := svc.GetTeams(asActor(employee))
	require.NoError(t, err)
	assert.Len(t, teams, 1)
	assert.True(t, env.cacheStore.has("teams:c-1"))

	_, err = svc.UpdateTeam(asActor(employee), team.ID, dto.UpdateTeamDTO{Name: utils.ToPtr("x")})
	requireHTTPError(t, err, http.StatusForbidden, "")

	renamed, err := svc.UpdateTeam(asActor(admin), team.ID, dto.UpdateTeamDTO{Name: utils.ToPtr("Fluid power")})
	require.NoError(t, err)
	assert.Equal(t, "Fluid power", renamed.Name)
	assert.False(t, env.cacheStore.has("teams:c-1"))

	require.NoError(t, svc.DeleteTeam(asActor(admin), team.ID))
	_, err = svc.FindTeam(asActor(admin), team.ID)
	requireHTTPError(t, err, http.StatusNotFound, "Team not found")
}
