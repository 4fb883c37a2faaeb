// file: services/edition_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"hyperion/models"
)

const activeEditionCacheKey = "competition:active_edition"

// ActiveEdition returns the single active edition, consulting the Redis
// cache first. A missing active edition is a client-visible 404.
func ActiveEdition(db *gorm.DB, rdb *redis.Client) (*models.CompetitionEdition, error) {
	if rdb != nil {
		if cached, err := rdb.Get(context.Background(), activeEditionCacheKey).Bytes(); err == nil {
			var edition models.CompetitionEdition
			if json.Unmarshal(cached, &edition) == nil {
				return &edition, nil
			}
		}
	}

	var edition models.CompetitionEdition
	if err := db.Where("active = ?", true).First(&edition).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("No active edition")
		}
		return nil, err
	}

	if rdb != nil {
		if payload, err := json.Marshal(edition); err == nil {
			rdb.Set(context.Background(), activeEditionCacheKey, payload, time.Minute)
		}
	}
	return &edition, nil
}

// ActivateEdition makes the given edition the only active one.
func ActivateEdition(db *gorm.DB, rdb *redis.Client, editionID uint32) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var edition models.CompetitionEdition
		if err := tx.First(&edition, editionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Edition not found")
			}
			return err
		}
		if err := tx.Model(&models.CompetitionEdition{}).
			Where("active = ?", true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Model(&edition).Update("active", true).Error
	})
	if err != nil {
		return err
	}
	InvalidateEditionCache(rdb)
	return nil
}

// SetEditionInscription toggles inscriptions for an edition.
func SetEditionInscription(db *gorm.DB, rdb *redis.Client, editionID uint32, enabled bool) error {
	res := db.Model(&models.CompetitionEdition{}).
		Where("id = ?", editionID).
		Update("inscription_enabled", enabled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFound("Edition not found")
	}
	InvalidateEditionCache(rdb)
	return nil
}

// InvalidateEditionCache drops the cached active edition after any edition
// mutation.
func InvalidateEditionCache(rdb *redis.Client) {
	if rdb != nil {
		rdb.Del(context.Background(), activeEditionCacheKey)
	}
}
