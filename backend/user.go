package backend

import (
	"context"

	"salonbook-client/models"
)

type otpRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp,omitempty"`
}

type VerifyOTPResponse struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

type userEnvelope struct {
	User models.UserProfile `json:"user"`
}

// LocationUpdate is pushed whenever both profile and location are known.
type LocationUpdate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	PushToken string  `json:"pushToken,omitempty"`
}

func (c *Client) SendOTP(ctx context.Context, mobile string) error {
	return c.Post(ctx, "/auth/send-otp", otpRequest{Mobile: mobile}, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, mobile, otp string) (*VerifyOTPResponse, error) {
	var resp VerifyOTPResponse
	if err := c.Post(ctx, "/auth/verify-otp", otpRequest{Mobile: mobile, OTP: otp}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetUserInfo(ctx context.Context) (*models.UserProfile, error) {
	var env userEnvelope
	if err := c.Get(ctx, "/user/info", nil, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

func (c *Client) UpdateLocation(ctx context.Context, update LocationUpdate) error {
	return c.Patch(ctx, "/user/location", update, nil)
}
