package dto

import "time"

type AddContactRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	LinkedUserID *int64 `json:"linked_user_id,omitempty"`
}

type ContactResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Relationship string    `json:"relationship"`
	LinkedUserID *int64    `json:"linked_user_id,omitempty"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}

type ContactsResponse struct {
	Items []ContactResponse `json:"items"`
}
