package services

import (
	"fmt"
	"strings"

	"salonbook-client/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// MessageSender is the Twilio call used to deliver invites.
type MessageSender interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type InviteResult struct {
	To      string `json:"to"`
	Channel string `json:"channel"` // whatsapp, sms
	SID     string `json:"sid,omitempty"`
}

// InviteService sends the user's referral code to a friend.
type InviteService struct {
	sender       MessageSender
	smsFrom      string
	whatsAppFrom string
	session      *SessionContext
	logger       *zap.Logger
}

type InviteConfig struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
}

func NewInviteService(cfg InviteConfig, session *SessionContext, logger *zap.Logger) *InviteService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newInviteService(client.Api, cfg, session, logger)
}

func newInviteService(sender MessageSender, cfg InviteConfig, session *SessionContext, logger *zap.Logger) *InviteService {
	return &InviteService{
		sender:       sender,
		smsFrom:      cfg.PhoneNumber,
		whatsAppFrom: cfg.WhatsAppNumber,
		session:      session,
		logger:       logger,
	}
}

// Invite texts the referral code to mobile. E.164 numbers go over WhatsApp
// when a WhatsApp sender is configured, everything else over SMS.
func (s *InviteService) Invite(mobile string) (*InviteResult, error) {
	if !utils.ValidatePhone(mobile) {
		return nil, ErrInvalidPhone
	}
	profile := s.session.Profile()
	if profile == nil {
		return nil, ErrNotLoggedIn
	}
	if profile.ReferralCode == "" {
		return nil, ErrNoReferralCode
	}

	phone := utils.NormalizePhone(mobile)
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = "A friend"
	}
	message := fmt.Sprintf("%s invited you to SalonBook. Sign up with referral code %s to get a welcome bonus in your wallet.", name, profile.ReferralCode)

	result := &InviteResult{To: phone, Channel: "sms"}
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(message)
	if strings.HasPrefix(phone, "+") && s.whatsAppFrom != "" {
		result.Channel = "whatsapp"
		params.SetTo("whatsapp:" + phone)
		params.SetFrom("whatsapp:" + s.whatsAppFrom)
	} else {
		params.SetTo(phone)
		params.SetFrom(s.smsFrom)
	}

	resp, err := s.sender.CreateMessage(params)
	if err != nil {
		s.logger.Warn("invite failed", zap.String("to", phone), zap.String("channel", result.Channel), zap.Error(err))
		return nil, fmt.Errorf("failed to send invite: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		result.SID = *resp.Sid
	}
	s.logger.Info("invite sent", zap.String("to", phone), zap.String("channel", result.Channel))
	return result, nil
}
