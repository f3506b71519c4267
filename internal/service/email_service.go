package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ugc-service/internal/apperror"
	"ugc-service/internal/mailer"
	"ugc-service/internal/model"
)

// Email providers
const (
	ProviderGmail   = "gmail"
	ProviderOutlook = "outlook"
	ProviderCustom  = "custom"
)

// Email delivery outcomes
const (
	EmailSent   = "sent"
	EmailFailed = "failed"
)

const threadLimit = 100

// EmailSettings is an organization's campaign email configuration
type EmailSettings struct {
	Provider             string `json:"provider"`
	EmailAddress         string `json:"emailAddress"`
	SMTPHost             string `json:"smtpHost,omitempty"`
	SMTPPort             int    `json:"smtpPort,omitempty"`
	SMTPUser             string `json:"smtpUser,omitempty"`
	SMTPPassword         string `json:"smtpPassword,omitempty"`
	EnableCampaignEmails bool   `json:"enableCampaignEmails"`
	AutoForward          bool   `json:"autoForward"`
	Configured           bool   `json:"configured"`
}

// EmailSettingsInput is the email settings body
type EmailSettingsInput struct {
	Provider             string `json:"provider"`
	EmailAddress         string `json:"emailAddress"`
	SMTPHost             string `json:"smtpHost"`
	SMTPPort             int    `json:"smtpPort"`
	SMTPUser             string `json:"smtpUser"`
	SMTPPassword         string `json:"smtpPassword"`
	EnableCampaignEmails *bool  `json:"enableCampaignEmails"`
	AutoForward          *bool  `json:"autoForward"`
}

// SendEmailInput is the campaign email body
type SendEmailInput struct {
	CampaignID  string          `json:"campaignId"`
	Subject     string          `json:"subject"`
	To          []string        `json:"to"`
	CC          []string        `json:"cc"`
	Body        string          `json:"body"`
	Attachments json.RawMessage `json:"attachments"`
}

// EmailEnvelope describes a sent campaign email
type EmailEnvelope struct {
	ID        string    `json:"id"`
	MessageID string    `json:"messageId"`
	ThreadID  string    `json:"threadId"`
	Subject   string    `json:"subject"`
	From      string    `json:"from"`
	To        []string  `json:"to"`
	CC        []string  `json:"cc,omitempty"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
}

// EmailThread is a campaign message shown as an email
type EmailThread struct {
	ID          string          `json:"id"`
	Subject     string          `json:"subject"`
	From        string          `json:"from"`
	To          []string        `json:"to"`
	Date        time.Time       `json:"date"`
	Body        string          `json:"body"`
	Attachments json.RawMessage `json:"attachments"`
	Read        bool            `json:"read"`
}

// EmailTemplate is a prefilled campaign update email
type EmailTemplate struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Signature string `json:"signature"`
}

// SyncResult reports an inbound sync run
type SyncResult struct {
	Synced   int       `json:"synced"`
	New      int       `json:"new"`
	Errors   []string  `json:"errors"`
	LastSync time.Time `json:"lastSync"`
}

// EmailService sends campaign emails and keeps the email integration settings
type EmailService struct {
	settings  SettingStore
	campaigns CampaignStore
	clients   ClientStore
	orgs      OrganizationStore
	messages  MessageStore
	mailer    mailer.Mailer
	now       func() time.Time
}

// NewEmailService creates an EmailService
func NewEmailService(settings SettingStore, campaigns CampaignStore, clients ClientStore, orgs OrganizationStore, messages MessageStore, m mailer.Mailer) *EmailService {
	return &EmailService{
		settings:  settings,
		campaigns: campaigns,
		clients:   clients,
		orgs:      orgs,
		messages:  messages,
		mailer:    m,
		now:       time.Now,
	}
}

func defaultEmailSettings(orgID string) EmailSettings {
	return EmailSettings{
		Provider:             ProviderGmail,
		EmailAddress:         fmt.Sprintf("campaigns@%s.ugc-impact.com", orgID),
		EnableCampaignEmails: true,
	}
}

// Settings returns the stored settings, or the defaults when none are saved.
// The SMTP password is never returned.
func (s *EmailService) Settings(ctx context.Context, orgID string) (*EmailSettings, error) {
	settings := defaultEmailSettings(orgID)
	if _, err := loadSettings(ctx, s.settings, orgID, model.IntegrationEmail, &settings); err != nil {
		return nil, apperror.Internal(err)
	}
	settings.SMTPPassword = ""
	return &settings, nil
}

// SaveSettings validates and stores the email settings; ADMIN only
func (s *EmailService) SaveSettings(ctx context.Context, orgID string, actor *model.User, in EmailSettingsInput) (*EmailSettings, error) {
	if actor.EffectiveRole() != model.RoleAdmin {
		return nil, apperror.Forbidden("Only admins can configure email settings")
	}
	switch in.Provider {
	case ProviderGmail, ProviderOutlook, ProviderCustom:
	default:
		return nil, apperror.BadRequest("Invalid provider")
	}
	address := normalizeEmail(in.EmailAddress)
	if !validEmail(address) {
		return nil, apperror.BadRequest("Invalid email address")
	}
	if in.SMTPPort < 0 || in.SMTPPort > 65535 {
		return nil, apperror.BadRequest("Invalid SMTP port")
	}

	settings := EmailSettings{
		Provider:             in.Provider,
		EmailAddress:         address,
		SMTPHost:             in.SMTPHost,
		SMTPPort:             in.SMTPPort,
		SMTPUser:             in.SMTPUser,
		SMTPPassword:         in.SMTPPassword,
		EnableCampaignEmails: boolOr(in.EnableCampaignEmails, true),
		AutoForward:          boolOr(in.AutoForward, false),
		Configured:           true,
	}
	if err := saveSettings(ctx, s.settings, orgID, model.IntegrationEmail, settings); err != nil {
		return nil, apperror.Internal(err)
	}
	settings.SMTPPassword = ""
	return &settings, nil
}

func (s *EmailService) campaign(ctx context.Context, orgID, campaignID string) (*model.Campaign, error) {
	campaign, err := s.campaigns.FindByID(ctx, orgID, campaignID)
	if err != nil {
		return nil, lookup(err, "Campaign not found")
	}
	client, err := s.clients.FindByID(ctx, orgID, campaign.ClientID)
	if err != nil && !isNotFound(err) {
		return nil, apperror.Internal(err)
	}
	campaign.Client = client
	return campaign, nil
}

// Threads renders the campaign's messages as email threads, newest first
func (s *EmailService) Threads(ctx context.Context, orgID, campaignID string) ([]EmailThread, error) {
	campaign, err := s.campaign(ctx, orgID, campaignID)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.ListByCampaign(ctx, campaignID, threadLimit, nil)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	to := "client@example.com"
	if campaign.Client != nil && campaign.Client.Email != "" {
		to = campaign.Client.Email
	}

	threads := make([]EmailThread, 0, len(messages))
	for _, msg := range messages {
		thread := EmailThread{
			ID:          msg.ID,
			Subject:     "Re: " + campaign.Title,
			To:          []string{to},
			Date:        msg.CreatedAt,
			Body:        msg.Content,
			Attachments: json.RawMessage("[]"),
			Read:        true,
		}
		if msg.Sender != nil {
			thread.From = msg.Sender.Email
		}
		if len(msg.Attachments) > 0 {
			thread.Attachments = json.RawMessage(msg.Attachments)
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

func checkRecipients(addresses []string, required bool) ([]string, error) {
	if required && len(addresses) == 0 {
		return nil, apperror.BadRequest("At least one recipient is required")
	}
	out := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		addr = strings.TrimSpace(addr)
		if !validEmail(strings.ToLower(addr)) {
			return nil, apperror.BadRequest(fmt.Sprintf("Invalid recipient: %s", addr))
		}
		out = append(out, addr)
	}
	return out, nil
}

// Send records the email as a campaign message and hands it to the mailer.
// A delivery failure is reported in the envelope status; the message stays recorded.
func (s *EmailService) Send(ctx context.Context, orgID string, actor *model.User, in SendEmailInput) (*EmailEnvelope, error) {
	if in.CampaignID == "" {
		return nil, apperror.BadRequest("Campaign is required")
	}
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		return nil, apperror.BadRequest("Subject is required")
	}
	if err := checkContent(in.Body); err != nil {
		return nil, err
	}
	to, err := checkRecipients(in.To, true)
	if err != nil {
		return nil, err
	}
	cc, err := checkRecipients(in.CC, false)
	if err != nil {
		return nil, err
	}

	if _, err := s.campaigns.FindByID(ctx, orgID, in.CampaignID); err != nil {
		return nil, lookup(err, "Campaign not found")
	}

	message := &model.Message{
		CampaignID: in.CampaignID,
		SenderID:   actor.ID,
		Content:    in.Body,
	}
	if len(in.Attachments) > 0 {
		message.Attachments = []byte(in.Attachments)
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, apperror.Internal(err)
	}
	touch(ctx, s.campaigns, in.CampaignID)

	settings, err := s.Settings(ctx, orgID)
	if err != nil {
		return nil, err
	}

	envelope := &EmailEnvelope{
		ID:        message.ID,
		MessageID: fmt.Sprintf("<%s@ugc-impact.com>", message.ID),
		ThreadID:  in.CampaignID,
		Subject:   subject,
		From:      actor.Email,
		To:        to,
		CC:        cc,
		Date:      message.CreatedAt,
		Status:    EmailSent,
	}
	if envelope.Date.IsZero() {
		envelope.Date = s.now()
	}
	err = s.mailer.Send(ctx, mailer.Email{
		From:     settings.EmailAddress,
		FromName: actor.Name,
		To:       to,
		CC:       cc,
		Subject:  subject,
		Body:     in.Body,
	})
	if err != nil {
		envelope.Status = EmailFailed
		envelope.Error = err.Error()
	}
	return envelope, nil
}

// Sync pulls inbound email. Only staff may trigger it; nothing is fetched yet.
func (s *EmailService) Sync(ctx context.Context, actor *model.User) (*SyncResult, error) {
	role := actor.EffectiveRole()
	if role != model.RoleAdmin && role != model.RoleStaff {
		return nil, apperror.Forbidden("Only admin/staff can sync emails")
	}
	return &SyncResult{Errors: []string{}, LastSync: s.now().UTC()}, nil
}

// Template returns a campaign update email addressed to the client
func (s *EmailService) Template(ctx context.Context, orgID string, actor *model.User, campaignID string) (*EmailTemplate, error) {
	campaign, err := s.campaign(ctx, orgID, campaignID)
	if err != nil {
		return nil, err
	}

	clientName := "there"
	if campaign.Client != nil && campaign.Client.Name != "" {
		clientName = campaign.Client.Name
	}
	orgName := "Organization"
	if org, err := s.orgs.FindByID(ctx, orgID); err == nil {
		orgName = org.Name
	} else if !isNotFound(err) {
		return nil, apperror.Internal(err)
	}

	return &EmailTemplate{
		Subject: fmt.Sprintf("[%s] Update", campaign.Title),
		Body: fmt.Sprintf("Hi %s,\n\nHere's an update on your campaign %q.\n\n[Your message here]\n\nBest regards,\n%s",
			clientName, campaign.Title, actor.Name),
		Signature: fmt.Sprintf("\n\n--\n%s\n%s\n%s", actor.Name, orgName, actor.Email),
	}, nil
}
