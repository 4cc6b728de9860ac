package contact

import "time"

// Message is a stored contact-form submission. Records are append-only: the
// application never mutates or deletes them.
type Message struct {
	ID            string    `json:"id" bson:"id"`
	Name          string    `json:"name" bson:"name"`
	Email         string    `json:"email" bson:"email"`
	Message       string    `json:"message" bson:"message"`
	Status        string    `json:"status" bson:"status"`
	EmailVerified bool      `json:"emailVerified" bson:"emailVerified"`
	UserAgent     string    `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	ClientIP      string    `json:"clientIP,omitempty" bson:"clientIP,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}
