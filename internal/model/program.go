package model

// Program is a coaching curriculum students enroll in. LessonCount seeds
// Progress.LessonsTotal at enrollment time.
type Program struct {
	BaseModel
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"size:100;index" json:"category"`
	Price       float64 `gorm:"type:decimal(10,2);default:0" json:"price"`
	LessonCount int     `gorm:"default:0" json:"lessonCount"`
	Published   bool    `gorm:"default:false" json:"published"`
}

func (Program) TableName() string {
	return "programs"
}
