package model

// DefaultCategory labels templates seeded without a category.
const DefaultCategory = "Other"

// TaskTemplate is a catalog entry a user can pick for the day.
type TaskTemplate struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// CategoryLabel returns the category, or DefaultCategory when none was set.
func (t TaskTemplate) CategoryLabel() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}
