package mapper

import (
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/model"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) CourseToEntity(c *model.GymCourse) *entity.GymCourse {
	if c == nil {
		return nil
	}
	return &entity.GymCourse{
		Id:            c.Id,
		GymOwnerId:    c.GymOwnerId,
		Name:          c.Name,
		Price:         c.Price,
		DurationDays:  c.DurationDays,
		TotalSessions: c.TotalSessions,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (m *CatalogMapper) CourseToModel(c *entity.GymCourse) *model.GymCourse {
	if c == nil {
		return nil
	}
	return &model.GymCourse{
		Id:            c.Id,
		GymOwnerId:    c.GymOwnerId,
		Name:          c.Name,
		Price:         c.Price,
		DurationDays:  c.DurationDays,
		TotalSessions: c.TotalSessions,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (m *CatalogMapper) PackageToEntity(p *model.PtPackage) *entity.PtPackage {
	if p == nil {
		return nil
	}
	return &entity.PtPackage{
		Id:            p.Id,
		TrainerId:     p.TrainerId,
		Name:          p.Name,
		Price:         p.Price,
		DurationDays:  p.DurationDays,
		TotalSessions: p.TotalSessions,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *CatalogMapper) PackageToModel(p *entity.PtPackage) *model.PtPackage {
	if p == nil {
		return nil
	}
	return &model.PtPackage{
		Id:            p.Id,
		TrainerId:     p.TrainerId,
		Name:          p.Name,
		Price:         p.Price,
		DurationDays:  p.DurationDays,
		TotalSessions: p.TotalSessions,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *CatalogMapper) ProductToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}
	return &entity.Product{
		Id:        p.Id,
		SellerId:  p.SellerId,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *CatalogMapper) ProductToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}
	return &model.Product{
		Id:        p.Id,
		SellerId:  p.SellerId,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *CatalogMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &entity.SubscriptionPlan{
		Id:         p.Id,
		GymOwnerId: p.GymOwnerId,
		Name:       p.Name,
		Price:      p.Price,
		PeriodDays: p.PeriodDays,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m *CatalogMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &model.SubscriptionPlan{
		Id:         p.Id,
		GymOwnerId: p.GymOwnerId,
		Name:       p.Name,
		Price:      p.Price,
		PeriodDays: p.PeriodDays,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
