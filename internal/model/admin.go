package model

import "time"

// Admin is an administrator account for the question editor and export.
// There is no role granularity beyond authenticated/not.
type Admin struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminLoginRequest is the credential pair for admin login.
// In demo mode only the fixed admin/admin pair is accepted.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}
