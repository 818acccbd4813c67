package timerecord

import "time"

// TimeRecord is open while CheckOut is nil. A record closes exactly once;
// nothing reopens it afterwards.
type TimeRecord struct {
	ID          int64      `gorm:"primaryKey"`
	EmployeeID  int64      `gorm:"column:employee_id;not null;index"`
	CheckIn     time.Time  `gorm:"column:check_in;not null"`
	CheckOut    *time.Time `gorm:"column:check_out"`
	Description string     `gorm:"column:description;type:text"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (TimeRecord) TableName() string {
	return "time_records"
}
