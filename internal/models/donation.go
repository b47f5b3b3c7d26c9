package models

import "gorm.io/gorm"

type Donation struct {
	gorm.Model

	UserID   uint   `gorm:"not null;index"`
	NgoID    uint   `gorm:"not null;index"`
	Category string `gorm:"not null"`
	Quantity int    `gorm:"not null"`
	Address  string `gorm:"not null"`
	Notes    string
	Photo    string `gorm:"not null"` // URL or file path of the uploaded photo
	Status   string `gorm:"not null;default:Pending;index"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Ngo  Ngo  `gorm:"foreignKey:NgoID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
