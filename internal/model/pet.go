package model

import "time"

type PetItem struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Type        string `gorm:"not null" json:"type"` // "food", "toy", "accessory"
	Cost        int    `gorm:"not null" json:"cost"`
	Description string `json:"description,omitempty"`
	UnlockLevel int    `gorm:"not null;default:1" json:"unlock_level"`
}

type StudentPetItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	StudentID   string    `gorm:"type:varchar(36);not null;index" json:"student_id"`
	ItemID      uint      `gorm:"not null" json:"item_id"`
	Item        PetItem   `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	PurchasedAt time.Time `gorm:"autoCreateTime" json:"purchased_at"`
}
