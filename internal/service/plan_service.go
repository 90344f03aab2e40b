package service

import (
	"context"

	"skillshare/internal/models"
	"skillshare/internal/repository"
	"skillshare/internal/validation"
)

// PlanService manages one kind of plan. Update copies the mutable fields
// from the request onto the stored plan with merge.
type PlanService[T repository.PlanModel] struct {
	repo  repository.PlanRepository[T]
	merge func(dst, src *T)
}

type (
	WorkoutPlanService = PlanService[models.WorkoutPlan]
	MealPlanService    = PlanService[models.MealPlan]
)

func NewWorkoutPlanService(repo repository.WorkoutPlanRepository) *WorkoutPlanService {
	return &PlanService[models.WorkoutPlan]{
		repo: repo,
		merge: func(dst, src *models.WorkoutPlan) {
			dst.Title = src.Title
			dst.Description = src.Description
			dst.Deadline = src.Deadline
			dst.Exercises = src.Exercises
			dst.Status = src.Status
		},
	}
}

func NewMealPlanService(repo repository.MealPlanRepository) *MealPlanService {
	return &PlanService[models.MealPlan]{
		repo: repo,
		merge: func(dst, src *models.MealPlan) {
			dst.Title = src.Title
			dst.Description = src.Description
			dst.Deadline = src.Deadline
			dst.Topics = src.Topics
		},
	}
}

func (s *PlanService[T]) Create(ctx context.Context, plan *T) (*T, error) {
	if err := validation.Struct(plan); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService[T]) List(ctx context.Context) ([]T, error) {
	return s.repo.List(ctx)
}

func (s *PlanService[T]) ListByUser(ctx context.Context, userID uint) ([]T, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *PlanService[T]) Get(ctx context.Context, id uint) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces the plan's mutable fields. The owner is never changed.
func (s *PlanService[T]) Update(ctx context.Context, id uint, in *T) (*T, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.merge(existing, in)
	if err := validation.Struct(existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes the plan. Unknown ids are not an error.
func (s *PlanService[T]) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
