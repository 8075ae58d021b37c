package tourpackage

import (
	"net/http"
	"saleema/infras/otel"
	"saleema/internal/domains/tourpackage/model"
	"saleema/internal/domains/tourpackage/model/dto"
	"saleema/internal/domains/tourpackage/service"
	"saleema/shared/constant"
	gDto "saleema/shared/dto"
	"saleema/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const querySearch = "search"

type Handler struct {
	service service.Package
	otel    otel.Otel
}

func New(service service.Package, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/packages", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPackages)
		routerGroup.Get("/{id}", handler.GetPackageByID)
	})
}

// GetPackages lists active tour packages.
// @Summary Get all packages
// @Description Retrieve active packages with optional filtering and pagination.
// @Tags Package
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param location query string false "Filter by location"
// @Param search query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetPackagesResponse] "List of packages"
// @Failure 500 {object} response.Error
// @Router /v1/packages [get]
func (handler *Handler) GetPackages(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	queryParams.RestrictSort(model.TableName, model.FieldName, model.FieldPrice, model.FieldDepartureDate)

	filter := dto.PackageFilter{
		Location: request.URL.Query().Get(model.FieldLocation),
		Search:   request.URL.Query().Get(querySearch),
	}

	packages, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get packages")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, packages)
}

// GetPackageByID returns a single active package with its remaining seats.
// @Summary Get a package by ID
// @Tags Package
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Data[dto.PackageResponse] "Package details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/{id} [get]
func (handler *Handler) GetPackageByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackageByID")
	defer scope.End()

	pkg, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, pkg)
}
