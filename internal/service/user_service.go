package service

import (
	"context"
	"strings"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"

	"github.com/pkg/errors"
)

type UpdateProfileInput struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Headline *string  `json:"headline" validate:"omitempty,max=255"`
	Bio      *string  `json:"bio" validate:"omitempty,max=5000"`
	Location *string  `json:"location" validate:"omitempty,max=255"`
	Phone    *string  `json:"phone" validate:"omitempty,max=32"`
	Skills   []string `json:"skills" validate:"omitempty,max=50,dive,min=1,max=50"`
}

// PublicProfile is what other users may see of a user.
type PublicProfile struct {
	models.UserSummary
	Bio      string   `json:"bio,omitempty"`
	Location string   `json:"location,omitempty"`
	Skills   []string `json:"skills,omitempty"`
}

type userCache interface {
	Invalidate(id uint)
}

type UserService struct {
	users  *repository.UserRepository
	cache  userCache
	store  documentStore
	folder string
}

func NewUserService(users *repository.UserRepository, cache userCache, store documentStore, folder string) *UserService {
	return &UserService{users: users, cache: cache, store: store, folder: folder}
}

func (s *UserService) invalidate(id uint) {
	if s.cache != nil {
		s.cache.Invalidate(id)
	}
}

func (s *UserService) Me(ctx context.Context, userID uint) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	return u, notFound(err, "user")
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			fields[col] = strings.TrimSpace(*v)
		}
	}
	set("name", in.Name)
	set("headline", in.Headline)
	set("bio", in.Bio)
	set("location", in.Location)
	set("phone", in.Phone)
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.Validation("name must not be empty")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if in.Skills != nil {
		u.Skills = in.Skills
		if err := s.users.Update(ctx, u); err != nil {
			return nil, err
		}
	}
	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, userID, fields); err != nil {
			return nil, notFound(err, "user")
		}
	}
	s.invalidate(userID)
	return s.Me(ctx, userID)
}

func (s *UserService) UploadAvatar(ctx context.Context, userID uint, f Upload) (*models.User, error) {
	if s.store == nil {
		return nil, domain.Validation("file uploads are not configured")
	}
	if _, err := checkUpload(f, imageExts, maxImageSize); err != nil {
		return nil, err
	}
	url, _, err := s.store.UploadImage(ctx, f.Body, uploadFolder(s.folder, "avatars", userID), newPublicID("avatar"))
	if err != nil {
		return nil, errors.Wrap(err, "upload avatar")
	}
	if err := s.users.UpdateFields(ctx, userID, map[string]interface{}{"avatar_url": url}); err != nil {
		return nil, notFound(err, "user")
	}
	s.invalidate(userID)
	return s.Me(ctx, userID)
}

// RegisterFCMToken stores the device token used for push notifications. An
// empty token unregisters the device.
func (s *UserService) RegisterFCMToken(ctx context.Context, userID uint, token string) error {
	if len(token) > 512 {
		return domain.Validation("token must be at most 512")
	}
	if err := s.users.SetFCMToken(ctx, userID, strings.TrimSpace(token)); err != nil {
		return notFound(err, "user")
	}
	s.invalidate(userID)
	return nil
}

func (s *UserService) PublicProfile(ctx context.Context, id uint) (*PublicProfile, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if !u.IsActive {
		return nil, domain.NotFound("user")
	}
	return &PublicProfile{UserSummary: u.Summary(), Bio: u.Bio, Location: u.Location, Skills: u.Skills}, nil
}
