// Package repository implements the data access layer for session preferences
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"weatherdash.app/models"
)

// PreferencesRepository persists the process-wide session preferences.
// Load is total: any storage failure degrades to the documented defaults so
// a broken store can never block a weather query. Save is best effort.
type PreferencesRepository interface {
	Load() *models.SessionPreferences
	Save(prefs *models.SessionPreferences) error
}

// DBPreferencesRepository stores preferences as a single row keyed by
// models.PreferencesKey
type DBPreferencesRepository struct {
	db *gorm.DB
}

// NewDBPreferencesRepository creates a database-backed preferences repository
func NewDBPreferencesRepository(db *gorm.DB) *DBPreferencesRepository {
	return &DBPreferencesRepository{db: db}
}

// Load retrieves the stored preferences, falling back to defaults when the
// row is missing or the read fails
func (r *DBPreferencesRepository) Load() *models.SessionPreferences {
	var prefs models.SessionPreferences
	result := r.db.Where("storage_key = ?", models.PreferencesKey).First(&prefs)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Printf("[ERROR] Database error when loading preferences: %v\n", result.Error)
		}
		return models.DefaultPreferences()
	}

	return &prefs
}

// Save replaces the stored preferences whole; partial updates never happen
func (r *DBPreferencesRepository) Save(prefs *models.SessionPreferences) error {
	prefs.StorageKey = models.PreferencesKey

	var existing models.SessionPreferences
	result := r.db.Where("storage_key = ?", models.PreferencesKey).First(&existing)
	if result.Error == nil {
		prefs.ID = existing.ID
	}

	if err := r.db.Save(prefs).Error; err != nil {
		log.Printf("[ERROR] Database error when saving preferences: %v\n", err)
		return err
	}

	return nil
}

// RedisPreferencesRepository stores preferences as a single JSON value under
// models.PreferencesKey
type RedisPreferencesRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPreferencesRepository creates a redis-backed preferences repository.
// A zero ttl keeps the value forever.
func NewRedisPreferencesRepository(client *redis.Client, ttl time.Duration) *RedisPreferencesRepository {
	return &RedisPreferencesRepository{client: client, ttl: ttl}
}

// Load retrieves the stored preferences, falling back to defaults when the
// key is missing or the read fails
func (r *RedisPreferencesRepository) Load() *models.SessionPreferences {
	data, err := r.client.Get(context.Background(), models.PreferencesKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[ERROR] Redis error when loading preferences: %v\n", err)
		}
		return models.DefaultPreferences()
	}

	var prefs models.SessionPreferences
	if err := json.Unmarshal([]byte(data), &prefs); err != nil {
		log.Printf("[ERROR] Corrupt preferences value, falling back to defaults: %v\n", err)
		return models.DefaultPreferences()
	}

	return &prefs
}

// Save replaces the stored preferences whole
func (r *RedisPreferencesRepository) Save(prefs *models.SessionPreferences) error {
	prefs.StorageKey = models.PreferencesKey

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	if err := r.client.Set(context.Background(), models.PreferencesKey, data, r.ttl).Err(); err != nil {
		log.Printf("[ERROR] Redis error when saving preferences: %v\n", err)
		return err
	}

	return nil
}
