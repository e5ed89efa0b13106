package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// UserProfile is the signed-in consumer as returned by the backend.
type UserProfile struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Mobile        string  `json:"mobile"`
	Email         string  `json:"email,omitempty"`
	WalletBalance float64 `json:"walletBalance"`
	ReferralCode  string  `json:"referralCode,omitempty"`
}

// Location is the device position plus its reverse-geocoded city.
type Location struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	City             string  `json:"city,omitempty"`
	PermissionDenied bool    `json:"permissionDenied,omitempty"`
	IsDefault        bool    `json:"isDefault,omitempty"`
}

// Custom JSONB type for free-form payloads stored on the device
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*j = JSONB{}
		return nil
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, j)
}
