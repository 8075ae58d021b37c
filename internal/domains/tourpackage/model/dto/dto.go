package dto

import (
	"saleema/internal/domains/tourpackage/model"
	"saleema/shared"
	"saleema/shared/constant"
	gDto "saleema/shared/dto"
	"saleema/shared/timezone"
)

type PackageResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	Quota         int    `json:"quota"`
	QuotaFilled   int    `json:"quota_filled"`
	Available     int    `json:"available"`
	DurationDays  int    `json:"duration_days"`
	DepartureDate string `json:"departure_date"`
	ImageURL      string `json:"image_url"`
	Active        bool   `json:"active"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(model model.Package) {
	r.ID = model.ID
	r.Name = model.Name
	r.Location = model.Location
	r.Description = model.Description
	r.Price = model.Price
	r.Quota = model.Quota
	r.QuotaFilled = model.QuotaFilled
	r.Available = model.Available()
	r.DurationDays = model.DurationDays
	r.DepartureDate = timezone.FormatDate(model.DepartureDate)
	r.ImageURL = model.ImageURL
	r.Active = model.Active
	r.Metadata = gDto.MetadataFrom(model.Metadata)
}

type GetPackagesResponse struct {
	Packages  []PackageResponse `json:"packages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPackagesResponse) FromModels(models []model.Package, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Packages = make([]PackageResponse, len(models))
	for i, mod := range models {
		r.Packages[i].FromModel(mod)
	}
}

// PackageFilter is the listing filter accepted from the catalogue endpoint.
type PackageFilter struct {
	Location string
	Search   string
}

func (f PackageFilter) ToFilterGroup() gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	if f.Location != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLocation,
			Value:    f.Location,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if f.Search != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  "search",
			Field:    model.FieldName,
			Value:    f.Search,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	return filterGroup
}
