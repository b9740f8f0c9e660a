package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stormvale/vocation-engine/internal/database/postgres"
	"github.com/stormvale/vocation-engine/internal/repository"
	"github.com/stormvale/vocation-engine/internal/skill"
	"github.com/stormvale/vocation-engine/internal/vocation"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Activity  repository.Activity
	Catalog   repository.Catalog
	Equipment repository.Equipment
	Skill     repository.Skill
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Activity:  postgres.NewActivityRepository(dbPool),
		Catalog:   postgres.NewCatalogRepository(dbPool),
		Equipment: postgres.NewEquipmentRepository(dbPool),
		Skill:     postgres.NewSkillRepository(dbPool),
	}
}

// InitializeServices wires repositories into the service layer.
func InitializeServices(repos *Repositories) (skill.Service, vocation.Service) {
	skillService := skill.NewService(repos.Skill)
	vocationService := vocation.NewService(repos.Activity, repos.Catalog, repos.Equipment, skillService)
	return skillService, vocationService
}
