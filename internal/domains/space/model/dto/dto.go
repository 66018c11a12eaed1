package dto

import (
	"mime/multipart"

	"atrium/internal/domains/space/model"
	"atrium/shared"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"

	"github.com/google/uuid"
)

type CreateSpaceRequest struct {
	Name        string                `json:"name"         validate:"required,max=100"`
	Building    string                `json:"building"     validate:"required,max=100"`
	Floor       string                `json:"floor"        validate:"required,max=20"`
	Location    string                `json:"location"     validate:"omitempty,max=200"`
	Capacity    int                   `json:"capacity"     validate:"required,gt=0"`
	Status      string                `json:"status"       validate:"omitempty,oneof=active inactive maintenance"`
	UtilityIDs  []string              `json:"utility_ids"  validate:"omitempty,dive,uuid"`
	Image       *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateSpaceRequest) ToModel(user string, imageURL string) model.Space {
	status := model.StatusActive
	if c.Status != "" {
		status = c.Status
	}

	return model.Space{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Building: c.Building,
		Floor:    c.Floor,
		Location: c.Location,
		Capacity: c.Capacity,
		ImageURL: imageURL,
		Status:   status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateSpaceRequest struct {
	Name       string                `db:"name"     json:"name"        validate:"omitempty,max=100"`
	Building   string                `db:"building" json:"building"    validate:"omitempty,max=100"`
	Floor      string                `db:"floor"    json:"floor"       validate:"omitempty,max=20"`
	Location   string                `db:"location" json:"location"    validate:"omitempty,max=200"`
	Capacity   *int                  `db:"capacity" json:"capacity"    validate:"omitempty,gt=0"`
	Status     string                `db:"status"   json:"status"      validate:"omitempty,oneof=active inactive maintenance"`
	UtilityIDs []string              `json:"utility_ids" validate:"omitempty,dive,uuid"`
	Image      *multipart.FileHeader `json:"image"  validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile  multipart.File        `json:"-"`
}

type UtilityResponse struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

func (u *UtilityResponse) FromModel(model model.Utility) {
	u.ID = model.ID
	u.Key = model.Key
	u.Label = model.Label
	u.Description = model.Description
}

type SpaceResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Building  string            `json:"building"`
	Floor     string            `json:"floor"`
	Location  string            `json:"location"`
	Capacity  int               `json:"capacity"`
	ImageURL  string            `json:"image_url"`
	Status    string            `json:"status"`
	Utilities []UtilityResponse `json:"utilities"`
	gDto.Metadata
}

func (r *SpaceResponse) FromModel(model model.Space, utilities []model.Utility) {
	r.ID = model.ID
	r.Name = model.Name
	r.Building = model.Building
	r.Floor = model.Floor
	r.Location = model.Location
	r.Capacity = model.Capacity
	r.ImageURL = model.ImageURL
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)

	r.Utilities = make([]UtilityResponse, len(utilities))
	for i, utility := range utilities {
		r.Utilities[i].FromModel(utility)
	}
}

type GetSpacesResponse struct {
	Spaces    []SpaceResponse `json:"spaces"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetSpacesResponse) FromModels(models []model.Space, utilities map[string][]model.Utility, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Spaces = make([]SpaceResponse, len(models))
	for i, mod := range models {
		r.Spaces[i].FromModel(mod, utilities[mod.ID])
	}
}

type GetUtilitiesResponse struct {
	Utilities []UtilityResponse `json:"utilities"`
}

func (r *GetUtilitiesResponse) FromModels(models []model.Utility) {
	r.Utilities = make([]UtilityResponse, len(models))
	for i, mod := range models {
		r.Utilities[i].FromModel(mod)
	}
}
