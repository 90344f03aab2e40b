package repository

import (
	"context"
	"fmt"

	"skillshare/internal/models"

	"gorm.io/gorm"
)

// PlanModel is satisfied by the plan aggregates stored by PlanRepository.
type PlanModel interface {
	models.WorkoutPlan | models.MealPlan
}

// PlanRepository defines persistence operations shared by workout and meal plans.
type PlanRepository[T PlanModel] interface {
	Create(ctx context.Context, plan *T) error
	GetByID(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context) ([]T, error)
	ListByUser(ctx context.Context, userID uint) ([]T, error)
	Update(ctx context.Context, plan *T) error
	Delete(ctx context.Context, id uint) error
}

type (
	WorkoutPlanRepository = PlanRepository[models.WorkoutPlan]
	MealPlanRepository    = PlanRepository[models.MealPlan]
)

type planRepository[T PlanModel] struct {
	db       *gorm.DB
	resource string
}

// NewWorkoutPlanRepository returns a WorkoutPlanRepository backed by db.
func NewWorkoutPlanRepository(db *gorm.DB) WorkoutPlanRepository {
	return &planRepository[models.WorkoutPlan]{db: db, resource: "Workout plan"}
}

// NewMealPlanRepository returns a MealPlanRepository backed by db.
func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &planRepository[models.MealPlan]{db: db, resource: "Meal plan"}
}

func (r *planRepository[T]) Create(ctx context.Context, plan *T) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *planRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var plan T
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return nil, lookupError(err, r.resource, id)
	}
	return &plan, nil
}

func (r *planRepository[T]) List(ctx context.Context) ([]T, error) {
	plans := []T{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&plans).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return plans, nil
}

func (r *planRepository[T]) ListByUser(ctx context.Context, userID uint) ([]T, error) {
	plans := []T{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&plans).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return plans, nil
}

func (r *planRepository[T]) Update(ctx context.Context, plan *T) error {
	if err := r.db.WithContext(ctx).Save(plan).Error; err != nil {
		return models.NewInternalError(fmt.Errorf("save %s: %w", r.resource, err))
	}
	return nil
}

func (r *planRepository[T]) Delete(ctx context.Context, id uint) error {
	var zero T
	if err := r.db.WithContext(ctx).Delete(&zero, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
