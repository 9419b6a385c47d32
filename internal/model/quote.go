package model

// Quote is a motivational line shown on the dashboard and in reports.
type Quote struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Text      string `gorm:"uniqueIndex;not null" json:"text"`
	Character string `json:"character,omitempty"`
	AudioURL  string `json:"audio_url,omitempty"`
}
