package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"devfolio-backend/internal/domains/project/model"
	"devfolio-backend/internal/infrastructure/storage"
)

// AddImage uploads the file and records the attachment. The ownership gate
// is the same as for any mutation. Existing images are never re-sequenced.
func (s *projectService) AddImage(ctx context.Context, projectID, requesterID uuid.UUID, data []byte, contentType string, req *model.AddImageRequest) (*model.ProjectImage, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	project, err := s.loadOwned(ctx, projectID, requesterID)
	if err != nil {
		return nil, err
	}

	url, err := s.store.UploadImage(ctx, fmt.Sprintf("projects/%s", project.ID), data, contentType)
	if err != nil {
		switch err {
		case storage.ErrFileTooLarge, storage.ErrDisallowedType, storage.ErrEmptyFile:
			return nil, model.NewValidationError(err)
		default:
			return nil, model.NewInternalError("failed to upload image", err)
		}
	}

	image := &model.ProjectImage{
		ID:        uuid.New(),
		ProjectID: project.ID,
		ImageURL:  url,
	}
	if req.Caption != nil {
		image.Caption = req.Caption
	}
	if req.SortOrder != nil {
		image.SortOrder = *req.SortOrder
	}

	if err := s.repo.AddImage(ctx, image); err != nil {
		return nil, model.NewInternalError("failed to save image", err)
	}

	s.invalidatePublicCache(ctx)

	return image, nil
}

// RemoveImage deletes one attachment. An image id belonging to a different
// project is reported as NotFound so ids cannot be probed across projects.
// The project's thumbnailUrl is left untouched even if it referenced the
// removed image.
func (s *projectService) RemoveImage(ctx context.Context, projectID, imageID, requesterID uuid.UUID) error {
	project, err := s.loadOwned(ctx, projectID, requesterID)
	if err != nil {
		return err
	}

	image, err := s.repo.FindImage(ctx, project.ID, imageID)
	if err != nil {
		return model.NewInternalError("failed to find image", err)
	}
	if image == nil {
		return model.NewImageNotFound()
	}

	if err := s.repo.RemoveImage(ctx, image.ID); err != nil {
		return model.NewInternalError("failed to remove image", err)
	}

	s.invalidatePublicCache(ctx)

	return nil
}
