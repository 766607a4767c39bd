package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/creditsim-api/internal/models"
)

// SimulationFilter describes the listing options for simulations.
type SimulationFilter struct {
	RiskCategory string
	Page         int
	PageSize     int
}

// SimulationRepository defines persistence operations for simulations.
type SimulationRepository interface {
	Create(ctx context.Context, simulation *models.Simulation) error
	GetByID(ctx context.Context, id uint) (models.Simulation, error)
	List(ctx context.Context, filter SimulationFilter) ([]models.Simulation, int64, error)
}

type simulationRepository struct {
	db *gorm.DB
}

// NewSimulationRepository instantiates a GORM-backed repository.
func NewSimulationRepository(db *gorm.DB) SimulationRepository {
	return &simulationRepository{db: db}
}

func (r *simulationRepository) Create(ctx context.Context, simulation *models.Simulation) error {
	return r.db.WithContext(ctx).Create(simulation).Error
}

func (r *simulationRepository) GetByID(ctx context.Context, id uint) (models.Simulation, error) {
	var simulation models.Simulation
	if err := r.db.WithContext(ctx).First(&simulation, id).Error; err != nil {
		return models.Simulation{}, err
	}

	return simulation, nil
}

// List returns the newest simulations first together with the unpaginated total.
func (r *simulationRepository) List(ctx context.Context, filter SimulationFilter) ([]models.Simulation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Simulation{})

	if filter.RiskCategory != "" {
		query = query.Where("risk_category = ?", filter.RiskCategory)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC").Order("id DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	simulations := make([]models.Simulation, 0)
	if err := query.Find(&simulations).Error; err != nil {
		return nil, 0, err
	}

	return simulations, total, nil
}
