package infrastructure

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BotSettingModel struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (BotSettingModel) TableName() string {
	return "bot_settings"
}

type BotSettingsGormRepository struct {
	db *gorm.DB
}

func NewBotSettingsGormRepository(db *gorm.DB) *BotSettingsGormRepository {
	return &BotSettingsGormRepository{db: db}
}

func (r *BotSettingsGormRepository) InitSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&BotSettingModel{})
}

func (r *BotSettingsGormRepository) Get(ctx context.Context, key string) (string, error) {
	var m BotSettingModel
	if err := r.db.WithContext(ctx).First(&m, "key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(m.Value), nil
}

func (r *BotSettingsGormRepository) Set(ctx context.Context, key string, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value}),
	}).Create(&BotSettingModel{
		Key:   key,
		Value: value,
	}).Error
}

func (r *BotSettingsGormRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&BotSettingModel{}, "key = ?", key).Error
}
