package domain

import "time"

// User representa una cuenta registrada.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	ConfirmationHash string    `json:"-"`
	Follow           int       `json:"follow"`
	CreatedAt        time.Time `json:"created_at"`
}

// PublicProfile es la vista mínima que se expone tras el login.
type PublicProfile struct {
	UserName string `json:"userName"`
	ID       string `json:"id"`
}

func (u User) PublicProfile() PublicProfile {
	return PublicProfile{UserName: u.Name, ID: u.ID}
}
