package models

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// ValidationContext selects which constraints apply to a payload
type ValidationContext int

const (
	// OnCreate forbids server-assigned fields (ids, timestamps, active flag)
	OnCreate ValidationContext = iota
	// OnUpdate only checks the client-editable fields
	OnUpdate
)

func (c ValidationContext) String() string {
	if c == OnCreate {
		return "create"
	}
	return "update"
}

// FieldErrors maps a JSON field name to a constraint violation message
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

const (
	msgBlank    = "must not be blank"
	msgMustNull = "must be null"
	msgNameSize = "size must be between 1 and 255"

	maxNameLength = 255
	// bcrypt only accepts passwords up to 72 bytes
	maxPasswordBytes = 72
)

// Validate checks a list payload
func (d ToDoListDto) Validate(vc ValidationContext) FieldErrors {
	fe := FieldErrors{}
	if msg := validateName(d.Name); msg != "" {
		fe["name"] = msg
	}
	if d.Description != nil {
		if n := utf8.RuneCountInString(*d.Description); n < 3 || n > 255 {
			fe["description"] = "size must be between 3 and 255"
		}
	}
	if vc == OnCreate {
		if d.ID != nil {
			fe["list_id"] = msgMustNull
		}
		if d.CreatedAt != nil {
			fe["creation_date"] = msgMustNull
		}
		if d.Active != nil {
			fe["active"] = msgMustNull
		}
	}
	return fe
}

// Validate checks a task payload
func (d TaskDto) Validate(vc ValidationContext) FieldErrors {
	fe := FieldErrors{}
	if msg := validateName(d.Name); msg != "" {
		fe["name"] = msg
	}
	if d.Description != nil && utf8.RuneCountInString(*d.Description) > 255 {
		fe["description"] = "size must be between 0 and 255"
	}
	if vc == OnCreate {
		if d.ID != nil {
			fe["task_id"] = msgMustNull
		}
		if d.ListID != nil {
			fe["list_id"] = msgMustNull
		}
		if d.CreatedAt != nil {
			fe["creation_date"] = msgMustNull
		}
		if d.CompletedAt != nil {
			fe["completion_date"] = msgMustNull
		}
		if d.Active != nil {
			fe["active"] = msgMustNull
		}
	}
	return fe
}

// Validate checks a registration payload
func (r RegisterUserRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if msg := validateUsername(r.Username); msg != "" {
		fe["username"] = msg
	}
	if msg := validatePassword(r.Password); msg != "" {
		fe["password"] = msg
	}
	if msg := validateEmail(r.Email); msg != "" {
		fe["email"] = msg
	}
	return fe
}

func (r ChangeUsernameRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if msg := validateUsername(r.Username); msg != "" {
		fe["username"] = msg
	}
	return fe
}

func (r ChangePasswordRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if msg := validatePassword(r.Password); msg != "" {
		fe["password"] = msg
	}
	return fe
}

func (r ChangeEmailRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if msg := validateEmail(r.Email); msg != "" {
		fe["email"] = msg
	}
	return fe
}

func validateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return msgBlank
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return msgNameSize
	}
	return ""
}

func validatePassword(password string) string {
	if strings.TrimSpace(password) == "" {
		return msgBlank
	}
	if len(password) > maxPasswordBytes {
		return "size must be between 1 and 72 bytes"
	}
	return ""
}

func validateUsername(username string) string {
	if strings.TrimSpace(username) == "" {
		return msgBlank
	}
	if n := utf8.RuneCountInString(username); n > 64 {
		return "size must be between 1 and 64"
	}
	if strings.ContainsAny(username, "/: \t") {
		return "must not contain '/', ':' or whitespace"
	}
	return ""
}

func validateEmail(email string) string {
	if strings.TrimSpace(email) == "" {
		return msgBlank
	}
	if utf8.RuneCountInString(email) > 255 {
		return "size must be between 1 and 255"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "must be a well-formed email address"
	}
	return ""
}
