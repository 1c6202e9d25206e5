package mysql

import (
	"context"

	appDomain "lamf-backend/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByNumber(ctx context.Context, appNumber string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("app_number = ?", appNumber).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByNumberForUpdate(ctx context.Context, appNumber string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("app_number = ?", appNumber).
		First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) Delete(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Delete(a).Error
}
