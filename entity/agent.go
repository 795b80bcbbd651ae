package entity

import (
	"ChatPulse/internal/lib/validate"
	"net/http"
	"time"
)

// Agent is one member of the support team. The roster feeds the
// known-support-phones set used for sender attribution.
type Agent struct {
	Name      string    `json:"name" bson:"name" validate:"required"`
	Phone     string    `json:"phone" bson:"phone" validate:"required,min=7"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (a *Agent) Bind(_ *http.Request) error {
	return validate.Struct(a)
}
