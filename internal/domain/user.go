package domain

// User Model
type User struct {
	ID              uint    `gorm:"primaryKey" json:"id"`            // Primary key
	Username        string  `gorm:"unique;not null" json:"username"` // Unique login name
	Password        string  `gorm:"not null" json:"-"`               // Hashed password, never serialized
	Nickname        *string `gorm:"uniqueIndex" json:"nickname"`     // Display name, unique when set, null when unset
	Age             *int    `json:"age"`                             // Optional age
	Intro           string  `json:"intro"`                           // Short bio text
	ProfileImageRef string  `gorm:"type:varchar(36)" json:"-"`       // Opaque reference into profile_images, empty when none
}

// ProfileImage stores uploaded profile picture bytes keyed by an opaque reference
type ProfileImage struct {
	ID       uint   `gorm:"primaryKey"`                   // Primary key
	Ref      string `gorm:"uniqueIndex;type:varchar(36)"` // Opaque reference handed out to User
	Filename string // Sanitized original filename
	Data     []byte `gorm:"type:longblob"` // Raw image bytes
}
