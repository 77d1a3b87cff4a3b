package entity

import "time"

const (
	LangArabic  = "ar"
	LangEnglish = "en"
)

type Farmer struct {
	ID         string    `json:"id,omitempty"`
	TelegramId int64     `json:"telegram_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Village    string    `json:"village"`
	Language   string    `json:"language"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
}

func NewFarmer(telegramId int64, name, phone, village, language string) *Farmer {
	if language == "" {
		language = LangArabic
	}
	return &Farmer{
		TelegramId: telegramId,
		Name:       name,
		Phone:      phone,
		Village:    village,
		Language:   language,
	}
}
