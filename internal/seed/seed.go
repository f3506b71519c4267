// Package seed loads demo data from a YAML fixture into the database.
// Every insert is keyed on a natural key so running it twice is a no-op.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"ugc-service/internal/model"
	"ugc-service/pkg/password"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPassword is assigned by BackfillPasswords
const DefaultPassword = "demo123456"

//go:embed fixture.yaml
var defaultFixture []byte

type Organization struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
	Logo string `yaml:"logo"`
}

type User struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Bio      string `yaml:"bio"`
	// OrgRole adds the user to the organization when set
	OrgRole string `yaml:"org_role"`
}

type Client struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Company string `yaml:"company"`
	Website string `yaml:"website"`
	Notes   string `yaml:"notes"`
}

type Requirements struct {
	ContentType  []string `yaml:"content_type"`
	Platform     []string `yaml:"platform"`
	Deliverables int      `yaml:"deliverables"`
	Guidelines   string   `yaml:"guidelines"`
}

type Order struct {
	Creator string `yaml:"creator"`
	Status  string `yaml:"status"`
	Notes   string `yaml:"notes"`
}

type Campaign struct {
	Title        string       `yaml:"title"`
	Client       string       `yaml:"client"`
	CreatedBy    string       `yaml:"created_by"`
	Brief        string       `yaml:"brief"`
	Status       string       `yaml:"status"`
	Budget       *float64     `yaml:"budget"`
	Deadline     *time.Time   `yaml:"deadline"`
	Requirements Requirements `yaml:"requirements"`
	Orders       []Order      `yaml:"orders"`
}

// Fixture is the whole seed data set
type Fixture struct {
	Organization Organization `yaml:"organization"`
	Users        []User       `yaml:"users"`
	Clients      []Client     `yaml:"clients"`
	Campaigns    []Campaign   `yaml:"campaigns"`
}

// Load parses and validates a YAML fixture
func Load(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Default returns the embedded demo fixture
func Default() (*Fixture, error) {
	return Load(defaultFixture)
}

// Validate checks roles, statuses and that every reference resolves within the fixture
func (f *Fixture) Validate() error {
	if f.Organization.Name == "" || f.Organization.Slug == "" {
		return errors.New("organization name and slug are required")
	}

	users := make(map[string]User, len(f.Users))
	for _, u := range f.Users {
		if u.Email == "" {
			return errors.New("user email is required")
		}
		if _, dup := users[u.Email]; dup {
			return fmt.Errorf("duplicate user %s", u.Email)
		}
		if u.Role != "" && !model.ValidRole(u.Role) {
			return fmt.Errorf("user %s: invalid role %q", u.Email, u.Role)
		}
		if u.OrgRole != "" && !model.ValidMemberRole(u.OrgRole) {
			return fmt.Errorf("user %s: invalid organization role %q", u.Email, u.OrgRole)
		}
		users[u.Email] = u
	}

	clients := make(map[string]bool, len(f.Clients))
	for _, c := range f.Clients {
		if c.Name == "" || c.Email == "" {
			return errors.New("client name and email are required")
		}
		clients[c.Email] = true
	}

	for _, c := range f.Campaigns {
		if c.Title == "" {
			return errors.New("campaign title is required")
		}
		if !clients[c.Client] {
			return fmt.Errorf("campaign %q: unknown client %s", c.Title, c.Client)
		}
		if _, ok := users[c.CreatedBy]; !ok {
			return fmt.Errorf("campaign %q: unknown creator of campaign %s", c.Title, c.CreatedBy)
		}
		if c.Status != "" && !model.ValidCampaignStatus(c.Status) {
			return fmt.Errorf("campaign %q: invalid status %q", c.Title, c.Status)
		}
		for _, o := range c.Orders {
			u, ok := users[o.Creator]
			if !ok || u.Role != model.RoleCreator {
				return fmt.Errorf("campaign %q: order creator %s is not a fixture creator", c.Title, o.Creator)
			}
			if o.Status != "" && !model.ValidOrderStatus(o.Status) {
				return fmt.Errorf("campaign %q: invalid order status %q", c.Title, o.Status)
			}
		}
	}
	return nil
}

// Result counts the rows a run inserted
type Result struct {
	Users     int
	Members   int
	Clients   int
	Campaigns int
	Orders    int
}

// Seeder writes fixtures to the database
type Seeder struct {
	db  *gorm.DB
	log *zap.Logger
}

// New creates a Seeder over db
func New(db *gorm.DB, log *zap.Logger) *Seeder {
	return &Seeder{db: db, log: log}
}

// Run inserts everything in f that does not exist yet, in one transaction
func (s *Seeder) Run(ctx context.Context, f *Fixture) (*Result, error) {
	result := &Result{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org := model.Organization{}
		if err := tx.Where(model.Organization{Slug: f.Organization.Slug}).
			Attrs(model.Organization{Name: f.Organization.Name, Logo: f.Organization.Logo}).
			FirstOrCreate(&org).Error; err != nil {
			return fmt.Errorf("organization %s: %w", f.Organization.Slug, err)
		}

		userIDs := make(map[string]string, len(f.Users))
		for _, u := range f.Users {
			user, created, err := s.user(tx, u)
			if err != nil {
				return err
			}
			userIDs[u.Email] = user.ID
			if created {
				result.Users++
			}

			if u.OrgRole == "" {
				continue
			}
			member := model.OrganizationMember{}
			res := tx.Where(model.OrganizationMember{OrganizationID: org.ID, UserID: user.ID}).
				Attrs(model.OrganizationMember{Role: u.OrgRole}).
				FirstOrCreate(&member)
			if res.Error != nil {
				return fmt.Errorf("membership %s: %w", u.Email, res.Error)
			}
			result.Members += int(res.RowsAffected)
		}

		clientIDs := make(map[string]string, len(f.Clients))
		for _, c := range f.Clients {
			client := model.Client{}
			res := tx.Where(model.Client{OrganizationID: org.ID, Email: c.Email}).
				Attrs(model.Client{
					Name:    c.Name,
					Phone:   c.Phone,
					Company: c.Company,
					Website: c.Website,
					Notes:   c.Notes,
					Status:  model.ClientActive,
				}).
				FirstOrCreate(&client)
			if res.Error != nil {
				return fmt.Errorf("client %s: %w", c.Email, res.Error)
			}
			clientIDs[c.Email] = client.ID
			result.Clients += int(res.RowsAffected)
		}

		for _, c := range f.Campaigns {
			status := c.Status
			if status == "" {
				status = model.CampaignDraft
			}
			campaign := model.Campaign{}
			res := tx.Where(model.Campaign{OrganizationID: org.ID, Title: c.Title}).
				Attrs(model.Campaign{
					ClientID:    clientIDs[c.Client],
					CreatedByID: userIDs[c.CreatedBy],
					Brief:       c.Brief,
					Status:      status,
					Budget:      c.Budget,
					Deadline:    c.Deadline,
					Requirements: datatypes.NewJSONType(model.CampaignRequirements{
						ContentType:  c.Requirements.ContentType,
						Platform:     c.Requirements.Platform,
						Deliverables: c.Requirements.Deliverables,
						Guidelines:   c.Requirements.Guidelines,
					}),
				}).
				FirstOrCreate(&campaign)
			if res.Error != nil {
				return fmt.Errorf("campaign %q: %w", c.Title, res.Error)
			}
			result.Campaigns += int(res.RowsAffected)

			for _, o := range c.Orders {
				orderStatus := o.Status
				if orderStatus == "" {
					orderStatus = model.OrderNew
				}
				order := model.Order{}
				res := tx.Where(model.Order{CampaignID: campaign.ID, CreatorID: userIDs[o.Creator]}).
					Attrs(model.Order{Status: orderStatus, Notes: o.Notes}).
					FirstOrCreate(&order)
				if res.Error != nil {
					return fmt.Errorf("order %s on %q: %w", o.Creator, c.Title, res.Error)
				}
				result.Orders += int(res.RowsAffected)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Seed completed",
		zap.String("organization", f.Organization.Slug),
		zap.Int("users", result.Users),
		zap.Int("members", result.Members),
		zap.Int("clients", result.Clients),
		zap.Int("campaigns", result.Campaigns),
		zap.Int("orders", result.Orders))
	return result, nil
}

// user looks a fixture user up by email and inserts it with a hashed password when missing
func (s *Seeder) user(tx *gorm.DB, u User) (*model.User, bool, error) {
	var user model.User
	err := tx.Where("email = ?", u.Email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("user %s: %w", u.Email, err)
	}

	user = model.User{Email: u.Email, Name: u.Name, Role: u.Role, Bio: u.Bio}
	if user.Role == "" {
		user.Role = model.RoleClient
	}
	if u.Password != "" {
		hash, err := password.Hash(u.Password)
		if err != nil {
			return nil, false, fmt.Errorf("user %s: %w", u.Email, err)
		}
		user.Password = hash
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, false, fmt.Errorf("user %s: %w", u.Email, err)
	}
	return &user, true, nil
}

// PasswordStore is the part of the user repository BackfillPasswords needs
type PasswordStore interface {
	WithoutPassword(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}

// BackfillPasswords gives every user without a stored hash the bcrypt hash of plain
func BackfillPasswords(ctx context.Context, users PasswordStore, plain string) (int, error) {
	pending, err := users.WithoutPassword(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, u := range pending {
		if err := users.Update(ctx, u.ID, map[string]interface{}{"password": hash}); err != nil {
			return updated, fmt.Errorf("user %s: %w", u.Email, err)
		}
		updated++
	}
	return updated, nil
}
