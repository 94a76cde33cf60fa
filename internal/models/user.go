package models

import "time"

// SkillLevel is a self-reported proficiency rating shown on the profile.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
	SkillMaster       SkillLevel = "Master"
)

// SkillLevels lists the accepted skill levels in display order.
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert, SkillMaster}

// User is an account holder. Password is nil for accounts created through an
// external identity provider; those accounts cannot log in with credentials.
type User struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FirstName  string     `json:"firstName" gorm:"column:first_name"`
	LastName   string     `json:"lastName" gorm:"column:last_name"`
	Location   string     `json:"location"`
	Email      string     `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Image      string     `json:"image" gorm:"default:no-image"`
	Password   *string    `json:"-" gorm:"type:varchar(255)"`
	SkillLevel SkillLevel `json:"skillLevel" gorm:"column:skill_level;type:varchar(20);not null;default:Beginner"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	Projects []Project `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table name singular.
func (User) TableName() string {
	return "user"
}

// RegisterRequest is the body accepted by the registration endpoint.
type RegisterRequest struct {
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password" validate:"required,min=6"`
	FirstName  string     `json:"firstName" validate:"required,max=100"`
	LastName   string     `json:"lastName" validate:"required,max=100"`
	Location   string     `json:"location" validate:"omitempty,max=255"`
	SkillLevel SkillLevel `json:"skillLevel" validate:"omitempty,skill_level"`
}

// LoginRequest is the body accepted by the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left as is.
type ProfileUpdate struct {
	FirstName  *string     `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName   *string     `json:"lastName" validate:"omitempty,min=1,max=100"`
	Location   *string     `json:"location" validate:"omitempty,max=255"`
	Image      *string     `json:"image" validate:"omitempty,max=2048"`
	SkillLevel *SkillLevel `json:"skillLevel" validate:"omitempty,skill_level"`
}
