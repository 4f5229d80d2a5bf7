package domain

import "time"

// Lead is a contact captured from the public landing page.
type Lead struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Company   string    `bson:"company,omitempty" json:"company,omitempty"`
	Message   string    `bson:"message,omitempty" json:"message,omitempty"`
	Source    string    `bson:"source,omitempty" json:"source,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// NewsletterSubscriber is a newsletter signup. Email is unique; a
// repeat signup is a no-op, not an error.
type NewsletterSubscriber struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	SubscribedAt time.Time `bson:"subscribed_at" json:"subscribedAt"`
}
