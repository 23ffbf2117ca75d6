package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
	Email               string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash        string         `gorm:"not null" json:"-"`
	Name                string         `gorm:"not null" json:"name"`
	Age                 *int           `json:"age,omitempty"`
	Location            string         `gorm:"size:255" json:"location,omitempty"`
	PhoneNumber         string         `gorm:"size:50" json:"phoneNumber,omitempty"`
	CookingExperience   string         `gorm:"size:50" json:"cookingExperience,omitempty"`
	FavoriteIngredients string         `gorm:"type:text" json:"favoriteIngredients,omitempty"`
	Allergies           string         `gorm:"type:text" json:"allergies,omitempty"`

	DietaryPreferences []DietaryPreference `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the ID application-side so the same models work on
// postgres and the sqlite test databases.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DietaryPreference is one tag of a user's dietary-preference set. The set
// is replaced wholesale on profile update.
type DietaryPreference struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Preference string    `gorm:"size:50;not null" json:"preference"`
	CreatedAt  time.Time `json:"created_at"`
}

func (DietaryPreference) TableName() string {
	return "dietary_preferences"
}

func (p *DietaryPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
