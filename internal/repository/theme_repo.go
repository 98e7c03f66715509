package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"moment_dev_v1_202609/internal/model"
)

// ThemeRepository 主题仓储接口
type ThemeRepository interface {
	Create(ctx context.Context, theme *model.Theme) error
	GetByID(ctx context.Context, id string) (*model.Theme, error)
	GetByName(ctx context.Context, name string) (*model.Theme, error)
	List(ctx context.Context, onlyActive bool) ([]model.Theme, error)
	UpdateConfig(ctx context.Context, id string, config datatypes.JSON) error
}

// themeRepo 主题仓储实现
type themeRepo struct {
	db *gorm.DB
}

// NewThemeRepository 创建主题仓储
func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepo{db: db}
}

func (r *themeRepo) Create(ctx context.Context, theme *model.Theme) error {
	return r.db.WithContext(ctx).Create(theme).Error
}

func (r *themeRepo) GetByID(ctx context.Context, id string) (*model.Theme, error) {
	var theme model.Theme
	if err := r.db.WithContext(ctx).First(&theme, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepo) GetByName(ctx context.Context, name string) (*model.Theme, error) {
	var theme model.Theme
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&theme).Error; err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepo) List(ctx context.Context, onlyActive bool) ([]model.Theme, error) {
	var themes []model.Theme
	query := r.db.WithContext(ctx).Model(&model.Theme{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name ASC").Find(&themes).Error; err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *themeRepo) UpdateConfig(ctx context.Context, id string, config datatypes.JSON) error {
	return r.db.WithContext(ctx).
		Model(&model.Theme{}).
		Where("id = ?", id).
		Update("config", config).Error
}
