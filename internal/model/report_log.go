package model

// ReportLog records each generated report for the history view.
type ReportLog struct {
	BaseModel
	Title  string `gorm:"type:varchar(255);not null" json:"title"`
	Type   string `gorm:"type:varchar(50);not null" json:"type"`
	Format string `gorm:"type:varchar(20);default:'generated'" json:"format"`
}
