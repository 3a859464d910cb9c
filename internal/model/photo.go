package model

import "time"

type Photo struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}
