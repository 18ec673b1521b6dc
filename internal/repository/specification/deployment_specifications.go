package specification

import "gorm.io/gorm"

// ActiveOnly keeps deployments usable for new chats
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// DefaultOnly keeps the registry's default deployment
type DefaultOnly struct{}

func (s DefaultOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_default = ?", true)
}

// ByName filters by the unique deployment name
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}
