package model

import "time"

type Category struct {
	ID         int64      `json:"category_id" db:"category_id"`
	Name       string     `json:"name" db:"name"`
	CreateTime *time.Time `json:"create_time,omitempty" db:"create_time"`
	UpdateTime *time.Time `json:"update_time,omitempty" db:"update_time"`
}
