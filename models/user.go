package models

import "time"

// User represents an account in the system
// Password is stored hashed (bcrypt); never return it in JSON responses
type User struct {
	ID        string     `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Password  string     `json:"-" db:"password"` // Hashed; omitted from JSON
	Email     string     `json:"email" db:"email"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	Lists     []ToDoList `json:"-" db:"-"`
}

// UserDto is the public shape of a user
type UserDto struct {
	ID       string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterUserRequest represents the request to create a user
type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` // Plaintext; hashed in the service
	Email    string `json:"email"`
}

// ChangeUsernameRequest is the body of PATCH /user/{username}/username
type ChangeUsernameRequest struct {
	Username string `json:"username"`
}

// ChangePasswordRequest is the body of PATCH /user/{username}/password
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// ChangeEmailRequest is the body of PATCH /user/{username}/email
type ChangeEmailRequest struct {
	Email string `json:"email"`
}
