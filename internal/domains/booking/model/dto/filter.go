package dto

import (
	"saleema/internal/domains/booking/model"
	"saleema/shared/constant"
	gDto "saleema/shared/dto"
)

const (
	ScopeAll     = "all"
	ScopeActive  = "active"
	ScopeHistory = "history"
)

// BookingFilter narrows a user's own bookings. Dates are YYYY-MM-DD and bound departure_date.
type BookingFilter struct {
	UserID   string
	Scope    string
	Status   string `validate:"omitempty,oneof=pending confirmed cancelled completed"`
	DateFrom string `validate:"omitempty,dateonly"`
	DateTo   string `validate:"omitempty,dateonly"`
	Search   string `validate:"omitempty,max=100"`
}

func (f BookingFilter) ToFilterGroup() (gDto.FilterGroup, error) {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Value: f.UserID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	switch {
	case f.Status != constant.Empty:
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    f.Status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	case f.Scope == ScopeActive:
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    []string{string(model.StatusPending), string(model.StatusConfirmed)},
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		})
	case f.Scope == ScopeHistory:
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    []string{string(model.StatusCompleted), string(model.StatusCancelled)},
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		})
	case f.Scope != ScopeAll && f.Scope != constant.Empty:
		return filterGroup, model.ErrUnknownBookingScope
	}

	if f.DateFrom != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  "date_from",
			Field:    model.FieldDepartureDate,
			Value:    f.DateFrom,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if f.DateTo != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  "date_to",
			Field:    model.FieldDepartureDate,
			Value:    f.DateTo,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	if f.Search != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "search_code",
					Field:    model.FieldBookingCode,
					Value:    f.Search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "search",
					Field:    "name",
					Value:    f.Search,
					Operator: gDto.FilterOperatorLike,
					Table:    "packages",
				},
			},
		})
	}

	return filterGroup, nil
}
