package domain

import "time"

// User is an account that owns tasks. The password is stored only as a
// bcrypt hash. EmailVerifiedAt is nil until the address is confirmed.
type User struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	Email           string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash    string     `gorm:"size:255;not null" json:"-"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Verified reports whether the user has confirmed their email address.
func (u *User) Verified() bool {
	return u.EmailVerifiedAt != nil
}
