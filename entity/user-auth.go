package entity

// UserAuth identifies the caller behind an accepted API key.
type UserAuth struct {
	Username string `json:"username" bson:"username"`
	Token    string `json:"token" bson:"token"`
}
