package models

import "gorm.io/gorm"

type VolunteerRequest struct {
	gorm.Model

	UserID uint   `gorm:"not null;index:idx_volunteer_user_ngo,unique"`
	NgoID  uint   `gorm:"not null;index:idx_volunteer_user_ngo,unique"`
	Status string `gorm:"not null;default:Pending;index"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Ngo  Ngo  `gorm:"foreignKey:NgoID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
