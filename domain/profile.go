package domain

import "time"

// Profile mirrors the operator's identity-provider metadata. It is
// synced best-effort after login and never load-bearing.
type Profile struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	Email       string    `bson:"email" json:"email"`
	DisplayName string    `bson:"display_name,omitempty" json:"displayName,omitempty"`
	AvatarURL   string    `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	Provider    string    `bson:"provider,omitempty" json:"provider,omitempty"`
	Username    string    `bson:"username,omitempty" json:"username,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
