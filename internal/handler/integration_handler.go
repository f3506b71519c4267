package handler

import (
	"context"
	"net/http"

	"ugc-service/internal/middleware"
	"ugc-service/internal/model"
	"ugc-service/internal/service"
	"ugc-service/pkg/logger"
	"ugc-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EmailService is the part of service.EmailService the email routes use
type EmailService interface {
	Settings(ctx context.Context, orgID string) (*service.EmailSettings, error)
	SaveSettings(ctx context.Context, orgID string, actor *model.User, in service.EmailSettingsInput) (*service.EmailSettings, error)
	Threads(ctx context.Context, orgID, campaignID string) ([]service.EmailThread, error)
	Send(ctx context.Context, orgID string, actor *model.User, in service.SendEmailInput) (*service.EmailEnvelope, error)
	Sync(ctx context.Context, actor *model.User) (*service.SyncResult, error)
	Template(ctx context.Context, orgID string, actor *model.User, campaignID string) (*service.EmailTemplate, error)
}

// EmailHandler serves /api/email
type EmailHandler struct {
	email EmailService
}

// NewEmailHandler creates an EmailHandler
func NewEmailHandler(email EmailService) *EmailHandler {
	return &EmailHandler{email: email}
}

// Settings returns the organization's email settings
func (h *EmailHandler) Settings(c echo.Context) error {
	settings, err := h.email.Settings(c.Request().Context(), middleware.OrganizationID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// SaveSettings stores the organization's email settings
func (h *EmailHandler) SaveSettings(c echo.Context) error {
	var req service.EmailSettingsInput
	if err := bind(c, &req); err != nil {
		return err
	}

	settings, err := h.email.SaveSettings(c.Request().Context(), middleware.OrganizationID(c), middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}
	logger.FromContext(c).Info("Email settings saved",
		zap.String("organization_id", middleware.OrganizationID(c)),
		zap.String("provider", settings.Provider))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "settings": settings})
}

// Threads returns a campaign's messages as email threads
func (h *EmailHandler) Threads(c echo.Context) error {
	threads, err := h.email.Threads(c.Request().Context(), middleware.OrganizationID(c), c.Param("campaignId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"threads": threads})
}

// Send records and dispatches a campaign email
func (h *EmailHandler) Send(c echo.Context) error {
	var req service.SendEmailInput
	if err := bind(c, &req); err != nil {
		return err
	}

	envelope, err := h.email.Send(c.Request().Context(), middleware.OrganizationID(c), middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}

	log := logger.FromContext(c)
	if envelope.Status == service.EmailFailed {
		prometheus.RecordEmailSent(service.EmailFailed)
		log.Warn("Email delivery failed",
			zap.String("campaign_id", req.CampaignID),
			zap.String("error", envelope.Error))
	} else {
		prometheus.RecordEmailSent(service.EmailSent)
		log.Info("Email sent",
			zap.String("campaign_id", req.CampaignID),
			zap.Int("recipients", len(req.To)+len(req.CC)))
	}
	return c.JSON(http.StatusCreated, envelope)
}

// Sync reports the result of an inbox sync
func (h *EmailHandler) Sync(c echo.Context) error {
	result, err := h.email.Sync(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Template returns a prefilled email for a campaign
func (h *EmailHandler) Template(c echo.Context) error {
	template, err := h.email.Template(c.Request().Context(), middleware.OrganizationID(c), middleware.CurrentUser(c), c.Param("campaignId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, template)
}

// DriveService is the part of service.DriveService the drive routes use
type DriveService interface {
	Settings(ctx context.Context, orgID string) (*service.DriveSettings, error)
	SaveSettings(ctx context.Context, orgID string, actor *model.User, in service.DriveSettingsInput) (*service.DriveSettings, error)
	ConnectURL(orgID string, actor *model.User) (string, error)
	Files(folderID, search string) []service.DriveFile
	CreateFolder(in service.CreateFolderInput) (*service.DriveFolder, error)
	SyncCampaign(ctx context.Context, orgID, campaignID string) (*service.DriveSyncResult, error)
	Structure(ctx context.Context, orgID, campaignID string) (*service.FolderNode, error)
	Share(in service.ShareInput) (*service.DrivePermission, error)
}

// DriveHandler serves /api/drive
type DriveHandler struct {
	drive DriveService
}

// NewDriveHandler creates a DriveHandler
func NewDriveHandler(drive DriveService) *DriveHandler {
	return &DriveHandler{drive: drive}
}

// Settings returns the organization's drive settings
func (h *DriveHandler) Settings(c echo.Context) error {
	settings, err := h.drive.Settings(c.Request().Context(), middleware.OrganizationID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// SaveSettings stores the organization's drive settings
func (h *DriveHandler) SaveSettings(c echo.Context) error {
	var req service.DriveSettingsInput
	if err := bind(c, &req); err != nil {
		return err
	}

	settings, err := h.drive.SaveSettings(c.Request().Context(), middleware.OrganizationID(c), middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "settings": settings})
}

// Connect returns the Google consent URL for the organization
func (h *DriveHandler) Connect(c echo.Context) error {
	authURL, err := h.drive.ConnectURL(middleware.OrganizationID(c), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"authUrl": authURL})
}

// Files lists drive files
func (h *DriveHandler) Files(c echo.Context) error {
	files := h.drive.Files(c.QueryParam("folderId"), c.QueryParam("search"))
	return c.JSON(http.StatusOK, echo.Map{"files": files, "nextPageToken": nil})
}

// CreateFolder creates a drive folder
func (h *DriveHandler) CreateFolder(c echo.Context) error {
	var req service.CreateFolderInput
	if err := bind(c, &req); err != nil {
		return err
	}

	folder, err := h.drive.CreateFolder(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, folder)
}

// SyncCampaign syncs a campaign's media to the drive
func (h *DriveHandler) SyncCampaign(c echo.Context) error {
	result, err := h.drive.SyncCampaign(c.Request().Context(), middleware.OrganizationID(c), c.Param("campaignId"))
	if err != nil {
		return err
	}
	logger.FromContext(c).Info("Campaign synced to drive",
		zap.String("campaign_id", c.Param("campaignId")),
		zap.Int64("files", result.FilesUploaded))
	return c.JSON(http.StatusOK, result)
}

// Structure returns a campaign's folder tree
func (h *DriveHandler) Structure(c echo.Context) error {
	structure, err := h.drive.Structure(c.Request().Context(), middleware.OrganizationID(c), c.Param("campaignId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, structure)
}

// Share grants access to a drive file
func (h *DriveHandler) Share(c echo.Context) error {
	var req service.ShareInput
	if err := bind(c, &req); err != nil {
		return err
	}

	permission, err := h.drive.Share(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "permission": permission})
}
