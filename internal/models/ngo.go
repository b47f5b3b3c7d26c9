package models

import "gorm.io/gorm"

type Ngo struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Phone        string `gorm:"not null"`
	Address      string `gorm:"not null"`
	Description  string

	// Relationships
	Donations         []Donation         `gorm:"foreignKey:NgoID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	VolunteerRequests []VolunteerRequest `gorm:"foreignKey:NgoID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
