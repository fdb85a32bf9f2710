package service

import (
	"context"
	"strings"

	"hireboard/internal/domain"
	"hireboard/internal/models"
	"hireboard/internal/repository"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type ResumeService struct {
	resumes *repository.ResumeRepository
	store   documentStore
	folder  string
}

func NewResumeService(resumes *repository.ResumeRepository, store documentStore, folder string) *ResumeService {
	return &ResumeService{resumes: resumes, store: store, folder: folder}
}

func (s *ResumeService) Upload(ctx context.Context, userID uint, title string, f Upload) (*models.Resume, error) {
	if s.store == nil {
		return nil, domain.Validation("file uploads are not configured")
	}
	ext, err := checkUpload(f, documentExts, maxDocumentSize)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSuffix(f.Filename, ext)
	}
	if len(title) > 255 {
		return nil, domain.Validation("title must be at most 255")
	}
	url, err := s.store.UploadDocument(ctx, f.Body, uploadFolder(s.folder, "resumes", userID), newPublicID("resume")+ext)
	if err != nil {
		return nil, errors.Wrap(err, "upload resume")
	}
	res := &models.Resume{UserID: userID, Title: title, FileURL: url}
	if err := s.resumes.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ResumeService) List(ctx context.Context, userID uint) ([]models.Resume, error) {
	list, err := s.resumes.ListByUser(ctx, userID)
	if list == nil {
		list = []models.Resume{}
	}
	return list, err
}

func (s *ResumeService) owned(ctx context.Context, userID, id uint) (*models.Resume, error) {
	res, err := s.resumes.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "resume")
	}
	if res.UserID != userID {
		return nil, domain.Forbidden("not your resume")
	}
	return res, nil
}

func (s *ResumeService) SetDefault(ctx context.Context, userID, id uint) (*models.Resume, error) {
	res, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.resumes.SetDefault(ctx, userID, id); err != nil {
		return nil, err
	}
	res.IsDefault = true
	return res, nil
}

// Delete removes the resume. The stored file is removed best-effort.
func (s *ResumeService) Delete(ctx context.Context, userID, id uint) error {
	res, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.resumes.Delete(ctx, id); err != nil {
		return err
	}
	if s.store != nil && res.FileURL != "" {
		if err := s.store.DeleteByURL(ctx, res.FileURL); err != nil {
			log.Warnf("delete resume file %s: %v", res.FileURL, err)
		}
	}
	return nil
}
