package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type PersonalData struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
}

type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email         string             `json:"email" bson:"email"`
	Password      string             `json:"-" bson:"password"`
	EmailVerified bool               `json:"emailVerified" bson:"emailVerified"`
	PersonalData  PersonalData       `json:"personalData" bson:"personalData"`
	Role          string             `json:"role" bson:"role"`
	Imagen        string             `json:"imagen,omitempty" bson:"imagen,omitempty"`
}

// UserSummary is the owner projection attached to OKR responses: identifier,
// email and display name only.
type UserSummary struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	Email        string             `json:"email" bson:"email"`
	PersonalData PersonalData       `json:"personalData" bson:"personalData"`
}

// Summary returns the public projection of a user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:           u.ID,
		Email:        u.Email,
		PersonalData: u.PersonalData,
	}
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
