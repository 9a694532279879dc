package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bookit-cli/model"
)

const (
	catalogCacheTTL = 10 * time.Minute
	detailCacheTTL  = 10 * time.Minute
	maxRecent       = 8
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

type RecentExperience struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type experienceHistory struct {
	Experiences []RecentExperience `json:"experiences"`
}

type catalogPage struct {
	Experiences []model.Experience `json:"experiences"`
	Pages       int                `json:"pages"`
}

func LoadCatalogCache(page int) ([]model.Experience, int, bool, error) {
	path, err := cachePath(fmt.Sprintf("experiences_p%d.json", page))
	if err != nil {
		return nil, 0, false, err
	}
	cache, err := loadCache[catalogPage](path)
	if err != nil {
		return nil, 0, false, err
	}
	fresh := time.Since(cache.UpdatedAt) <= catalogCacheTTL
	return cache.Data.Experiences, cache.Data.Pages, fresh, nil
}

func SaveCatalogCache(page int, experiences []model.Experience, pages int) error {
	path, err := cachePath(fmt.Sprintf("experiences_p%d.json", page))
	if err != nil {
		return err
	}
	return saveCache(path, catalogPage{Experiences: experiences, Pages: pages})
}

func LoadDetailCache(id string) (model.Experience, bool, error) {
	if strings.TrimSpace(id) == "" {
		return model.Experience{}, false, errors.New("experience id is required")
	}
	path, err := cachePath(fmt.Sprintf("experience_%s.json", id))
	if err != nil {
		return model.Experience{}, false, err
	}
	cache, err := loadCache[model.Experience](path)
	if err != nil {
		return model.Experience{}, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= detailCacheTTL, nil
}

func SaveDetailCache(experience model.Experience) error {
	if experience.Id == "" {
		return errors.New("experience id is required")
	}
	path, err := cachePath(fmt.Sprintf("experience_%s.json", experience.Id))
	if err != nil {
		return err
	}
	return saveCache(path, experience)
}

func LoadRecentExperiences() ([]RecentExperience, error) {
	path, err := configPath("history.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history experienceHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid experience history format")
	}
	return history.Experiences, nil
}

func RememberExperience(experience model.Experience) error {
	history, _ := LoadRecentExperiences()
	next := []RecentExperience{{ID: experience.Id, Title: experience.Title}}

	for _, existing := range history {
		if existing.ID == experience.Id && existing.ID != "" {
			continue
		}
		if existing.Title != "" && stringsEqualFold(existing.Title, experience.Title) {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecent {
			break
		}
	}

	return saveRecentExperiences(next)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func saveRecentExperiences(experiences []RecentExperience) error {
	path, err := configPath("history.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	history := experienceHistory{Experiences: experiences}
	payload, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bookit-cli", name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bookit-cli", name), nil
}

func stringsEqualFold(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
