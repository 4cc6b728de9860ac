package assets

import "time"

// File kinds stored in the assets collection. Avatar and resume are
// singletons, project images are keyed by a generated id.
const (
	KindAvatar       = "avatar"
	KindResume       = "resume"
	KindProjectImage = "project-image"
)

// StoredFile is a small binary blob persisted inline in the document store.
// Data holds the base64-encoded payload.
type StoredFile struct {
	ID          string    `json:"id" bson:"id"`
	Kind        string    `json:"kind" bson:"kind"`
	Filename    string    `json:"filename" bson:"filename"`
	ContentType string    `json:"contentType" bson:"contentType"`
	Size        int64     `json:"size" bson:"size"`
	Data        string    `json:"-" bson:"data"`
	UploadedAt  time.Time `json:"uploadedAt" bson:"uploadedAt"`
}
