package models

import (
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created"`
}

// UserView is the public shape of a user. Token is only set by the
// operation that issued it.
type UserView struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Created  time.Time `json:"created"`
	Token    string    `json:"token,omitempty"`
}

// UserListItem is a user view expanded with the ids of the ONGs it owns.
type UserListItem struct {
	UserView
	Ongs []string `json:"ongs"`
}

func (u User) View() UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email, Created: u.CreatedAt}
}

func (u User) ViewWithToken(token string) UserView {
	v := u.View()
	v.Token = token
	return v
}
