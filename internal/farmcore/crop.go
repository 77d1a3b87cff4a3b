package farmcore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"FarmBot/entity"
)

// ListCrops returns a farmer's crops ordered by planting date, oldest
// first. No crops is an empty slice, not an error.
func (s *Service) ListCrops(ctx context.Context, farmerId string) ([]entity.Crop, error) {
	params := url.Values{}
	params.Set("farmer_id", eq(farmerId))
	params.Set("select", "*")
	params.Set("order", "planting_date.asc")

	var rows []entity.Crop
	if err := s.get(ctx, "crops", params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) GetCrop(ctx context.Context, cropId string) (*entity.Crop, error) {
	params := url.Values{}
	params.Set("id", eq(cropId))
	params.Set("select", "*")

	var rows []entity.Crop
	if err := s.get(ctx, "crops", params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("get crop %s: %w", cropId, ErrNotFound)
	}
	return &rows[0], nil
}

// CropNameTaken reports whether the farmer already has a crop with the
// given name, compared case-insensitively. The crop identified by
// excludeCropId is ignored so a rename to the crop's own name passes.
func (s *Service) CropNameTaken(ctx context.Context, farmerId, name, excludeCropId string) (bool, error) {
	crops, err := s.ListCrops(ctx, farmerId)
	if err != nil {
		return false, err
	}
	for _, c := range crops {
		if c.ID == excludeCropId {
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) CreateCrop(ctx context.Context, crop *entity.Crop) (*entity.Crop, error) {
	var rows []entity.Crop
	if err := s.post(ctx, "crops", crop, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create crop: %w", ErrNotFound)
	}
	return &rows[0], nil
}

// UpdateCrop patches the given columns. Passing a nil value clears the
// column, so {"notes": nil} wipes the notes.
func (s *Service) UpdateCrop(ctx context.Context, cropId string, updates map[string]any) (*entity.Crop, error) {
	params := url.Values{}
	params.Set("id", eq(cropId))

	var rows []entity.Crop
	if err := s.patch(ctx, "crops", params, updates, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("update crop %s: %w", cropId, ErrNotFound)
	}
	return &rows[0], nil
}

// DeleteCrop removes a crop. The representation of the deleted rows
// doubles as the verification that something was actually removed.
func (s *Service) DeleteCrop(ctx context.Context, cropId string) error {
	params := url.Values{}
	params.Set("id", eq(cropId))

	var rows []entity.Crop
	if err := s.delete(ctx, "crops", params, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("delete crop %s: %w", cropId, ErrNotFound)
	}
	return nil
}
