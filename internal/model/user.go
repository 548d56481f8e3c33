package model

// User is a household member. There are no passwords: clients pick a user and
// act as them, so usernames only need to be unique.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
