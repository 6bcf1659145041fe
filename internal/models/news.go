package models

import (
	"time"
)

type NewsType string

const (
	NewsNotice  NewsType = "notice"
	NewsHoliday NewsType = "holiday"
	NewsExam    NewsType = "exam"
	NewsEvent   NewsType = "event"
	NewsGeneral NewsType = "general"
)

type NewsItem struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	Title   string    `json:"title" gorm:"not null;size:200"`
	Content string    `json:"content" gorm:"not null;type:text"`
	Type    NewsType  `json:"type" gorm:"not null;default:general;size:10"`
	Date    time.Time `json:"date" gorm:"not null;index"`

	// Deleting news hides it rather than removing the row.
	IsActive bool `json:"isActive" gorm:"not null;default:true;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (NewsItem) TableName() string {
	return "news_items"
}
