package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ugc-service/internal/apperror"
	"ugc-service/internal/model"
	"ugc-service/pkg/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	driveScope      = "https://www.googleapis.com/auth/drive"
	driveFolderMime = "application/vnd.google-apps.folder"
	driveQuota      = int64(15) << 30
)

var folderStructures = map[string]bool{"flat": true, "by-client": true, "by-campaign": true, "by-date": true}

var shareRoles = map[string]bool{"reader": true, "writer": true, "commenter": true}

// DriveUsage is the storage used by the connected drive
type DriveUsage struct {
	Used       int64   `json:"used"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
}

// DriveSettings is an organization's Google Drive configuration
type DriveSettings struct {
	Enabled         bool       `json:"enabled"`
	Connected       bool       `json:"connected"`
	Email           *string    `json:"email"`
	FolderID        *string    `json:"folderId"`
	FolderStructure string     `json:"folderStructure"`
	AutoSync        bool       `json:"autoSync"`
	SyncInterval    int        `json:"syncInterval"`
	LastSync        *time.Time `json:"lastSync"`
	Usage           DriveUsage `json:"usage"`
}

// DriveSettingsInput is the drive settings body
type DriveSettingsInput struct {
	Enabled         *bool   `json:"enabled"`
	FolderID        *string `json:"folderId"`
	FolderStructure string  `json:"folderStructure"`
	AutoSync        *bool   `json:"autoSync"`
	SyncInterval    *int    `json:"syncInterval"`
}

// DriveFile is a file listed from the drive
type DriveFile struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	MimeType       string          `json:"mimeType"`
	Size           int64           `json:"size"`
	CreatedTime    time.Time       `json:"createdTime"`
	ModifiedTime   time.Time       `json:"modifiedTime"`
	WebViewLink    string          `json:"webViewLink"`
	WebContentLink string          `json:"webContentLink"`
	ThumbnailLink  *string         `json:"thumbnailLink"`
	Parents        []string        `json:"parents"`
	Capabilities   map[string]bool `json:"capabilities"`
}

// CreateFolderInput is the folder creation body
type CreateFolderInput struct {
	Name       string `json:"name"`
	ParentID   string `json:"parentId"`
	CampaignID string `json:"campaignId"`
	ClientID   string `json:"clientId"`
}

// DriveFolder is a created drive folder
type DriveFolder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MimeType    string    `json:"mimeType"`
	Parents     []string  `json:"parents"`
	CreatedTime time.Time `json:"createdTime"`
	WebViewLink string    `json:"webViewLink"`
}

// DriveSyncResult summarizes a campaign sync
type DriveSyncResult struct {
	CampaignID    string    `json:"campaignId"`
	FolderID      string    `json:"folderId"`
	FolderLink    string    `json:"folderLink"`
	FilesUploaded int64     `json:"filesUploaded"`
	BytesUploaded int64     `json:"bytesUploaded"`
	SharedWith    []string  `json:"sharedWith"`
	SyncedAt      time.Time `json:"syncedAt"`
}

// FolderNode is one folder of a campaign's drive tree
type FolderNode struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	FileCount int          `json:"fileCount,omitempty"`
	Folders   []FolderNode `json:"folders,omitempty"`
}

// ShareInput is the share body
type ShareInput struct {
	FileID           string `json:"fileId"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	SendNotification *bool  `json:"sendNotification"`
}

// DrivePermission is a granted drive permission
type DrivePermission struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	EmailAddress string `json:"emailAddress"`
	Role         string `json:"role"`
	DisplayName  string `json:"displayName"`
}

// DriveService fronts the Google Drive integration. File operations are simulated;
// settings, consent URLs and campaign summaries are real.
type DriveService struct {
	settings  SettingStore
	campaigns CampaignStore
	clients   ClientStore
	oauth     *oauth2.Config
	now       func() time.Time
}

// NewDriveService creates a DriveService using the Google OAuth client from cfg
func NewDriveService(settings SettingStore, campaigns CampaignStore, clients ClientStore, cfg config.GoogleConfig) *DriveService {
	return &DriveService{
		settings:  settings,
		campaigns: campaigns,
		clients:   clients,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoints.Google,
			Scopes:       []string{driveScope},
		},
		now: time.Now,
	}
}

func defaultDriveSettings() DriveSettings {
	return DriveSettings{
		FolderStructure: "by-campaign",
		AutoSync:        true,
		SyncInterval:    15,
		Usage:           DriveUsage{Total: driveQuota},
	}
}

func requireAdmin(actor *model.User, message string) error {
	if actor.EffectiveRole() != model.RoleAdmin {
		return apperror.Forbidden(message)
	}
	return nil
}

// Settings returns the stored settings, or the defaults when none are saved
func (s *DriveService) Settings(ctx context.Context, orgID string) (*DriveSettings, error) {
	settings := defaultDriveSettings()
	if _, err := loadSettings(ctx, s.settings, orgID, model.IntegrationDrive, &settings); err != nil {
		return nil, apperror.Internal(err)
	}
	return &settings, nil
}

// SaveSettings validates and stores the drive settings; ADMIN only
func (s *DriveService) SaveSettings(ctx context.Context, orgID string, actor *model.User, in DriveSettingsInput) (*DriveSettings, error) {
	if err := requireAdmin(actor, "Only admins can configure Google Drive"); err != nil {
		return nil, err
	}
	if in.Enabled == nil {
		return nil, apperror.BadRequest("enabled is required")
	}
	structure := in.FolderStructure
	if structure == "" {
		structure = "by-campaign"
	}
	if !folderStructures[structure] {
		return nil, apperror.BadRequest("Invalid folder structure")
	}
	interval := 15
	if in.SyncInterval != nil {
		interval = *in.SyncInterval
	}
	if interval < 5 || interval > 60 {
		return nil, apperror.BadRequest("Sync interval must be between 5 and 60 minutes")
	}

	settings, err := s.Settings(ctx, orgID)
	if err != nil {
		return nil, err
	}
	settings.Enabled = *in.Enabled
	settings.FolderID = in.FolderID
	settings.FolderStructure = structure
	settings.AutoSync = boolOr(in.AutoSync, true)
	settings.SyncInterval = interval

	if err := saveSettings(ctx, s.settings, orgID, model.IntegrationDrive, settings); err != nil {
		return nil, apperror.Internal(err)
	}
	return settings, nil
}

// ConnectURL returns the Google consent URL; the organization id travels as the state
func (s *DriveService) ConnectURL(orgID string, actor *model.User) (string, error) {
	if err := requireAdmin(actor, "Only admins can connect Google Drive"); err != nil {
		return "", err
	}
	return s.oauth.AuthCodeURL(orgID, oauth2.AccessTypeOffline), nil
}

// Files lists the drive files in folderID whose name contains search
func (s *DriveService) Files(folderID, search string) []DriveFile {
	parent := folderID
	if parent == "" {
		parent = "root"
	}
	thumbnail := "https://drive.google.com/thumbnail/2"
	files := []DriveFile{
		{
			ID:             "1",
			Name:           "Campaign Brief.pdf",
			MimeType:       "application/pdf",
			Size:           2 << 20,
			CreatedTime:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			ModifiedTime:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			WebViewLink:    "https://drive.google.com/file/1",
			WebContentLink: "https://drive.google.com/download/1",
			Parents:        []string{parent},
			Capabilities:   map[string]bool{"canEdit": true, "canDownload": true, "canDelete": true},
		},
		{
			ID:             "2",
			Name:           "Product Video.mp4",
			MimeType:       "video/mp4",
			Size:           150 << 20,
			CreatedTime:    time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			ModifiedTime:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			WebViewLink:    "https://drive.google.com/file/2",
			WebContentLink: "https://drive.google.com/download/2",
			ThumbnailLink:  &thumbnail,
			Parents:        []string{parent},
			Capabilities:   map[string]bool{"canEdit": true, "canDownload": true, "canDelete": false},
		},
	}

	if search == "" {
		return files
	}
	needle := strings.ToLower(search)
	filtered := make([]DriveFile, 0, len(files))
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.Name), needle) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// CreateFolder creates a folder under parentId, or the drive root
func (s *DriveService) CreateFolder(in CreateFolderInput) (*DriveFolder, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.BadRequest("Name is required")
	}
	parent := in.ParentID
	if parent == "" {
		parent = "root"
	}
	now := s.now()
	id := fmt.Sprintf("folder-%d", now.UnixMilli())
	return &DriveFolder{
		ID:          id,
		Name:        name,
		MimeType:    driveFolderMime,
		Parents:     []string{parent},
		CreatedTime: now,
		WebViewLink: "https://drive.google.com/drive/folders/" + id,
	}, nil
}

// SyncCampaign pushes the campaign's media to its drive folder and shares it with the client
func (s *DriveService) SyncCampaign(ctx context.Context, orgID, campaignID string) (*DriveSyncResult, error) {
	campaign, err := s.campaigns.FindByID(ctx, orgID, campaignID)
	if err != nil {
		return nil, lookup(err, "Campaign not found")
	}
	count, size, err := s.campaigns.MediaSummary(ctx, campaignID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	sharedWith := []string{}
	client, err := s.clients.FindByID(ctx, orgID, campaign.ClientID)
	switch {
	case err == nil && client.Email != "":
		sharedWith = append(sharedWith, client.Email)
	case err != nil && !isNotFound(err):
		return nil, apperror.Internal(err)
	}

	folderID := "folder-" + campaignID
	return &DriveSyncResult{
		CampaignID:    campaignID,
		FolderID:      folderID,
		FolderLink:    "https://drive.google.com/drive/folders/" + folderID,
		FilesUploaded: count,
		BytesUploaded: size,
		SharedWith:    sharedWith,
		SyncedAt:      s.now().UTC(),
	}, nil
}

// Structure returns the campaign's drive folder tree
func (s *DriveService) Structure(ctx context.Context, orgID, campaignID string) (*FolderNode, error) {
	if _, err := s.campaigns.FindByID(ctx, orgID, campaignID); err != nil {
		return nil, lookup(err, "Campaign not found")
	}
	root := "folder-" + campaignID
	return &FolderNode{
		ID:   root,
		Name: "Campaign Files",
		Folders: []FolderNode{
			{ID: root + "-raw", Name: "Raw Files", FileCount: 5},
			{ID: root + "-edited", Name: "Edited Files", FileCount: 3},
			{ID: root + "-final", Name: "Final Deliverables", FileCount: 2},
		},
	}, nil
}

// Share grants email access to a drive file
func (s *DriveService) Share(in ShareInput) (*DrivePermission, error) {
	if in.FileID == "" {
		return nil, apperror.BadRequest("fileId is required")
	}
	email := normalizeEmail(in.Email)
	if !validEmail(email) {
		return nil, apperror.BadRequest("Invalid email")
	}
	role := in.Role
	if role == "" {
		role = "reader"
	}
	if !shareRoles[role] {
		return nil, apperror.BadRequest("Invalid role")
	}
	return &DrivePermission{
		ID:           fmt.Sprintf("perm-%d", s.now().UnixMilli()),
		Type:         "user",
		EmailAddress: email,
		Role:         role,
		DisplayName:  email,
	}, nil
}
