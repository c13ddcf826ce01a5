package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/garagely/garage-api/internal/core/ports"
)

// CarHandler handles the car CRUD endpoints. Reads are open; creation,
// update and delete require a bearer token (policy set in the router).
type CarHandler struct {
	service ports.CarService
}

func NewCarHandler(service ports.CarService) *CarHandler {
	return &CarHandler{service: service}
}

// Create handles POST /api/cars.
//
// @Summary      Create a new car
// @Tags         cars
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      carRequest  true  "Car details"
// @Success      201   {object}  carResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Router       /cars [post]
func (h *CarHandler) Create(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req carRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	car, err := h.service.Create(c.Request().Context(), ports.CarInput{
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCarResponse(car))
}

// List handles GET /api/cars.
//
// @Summary      List all cars
// @Tags         cars
// @Produce      json
// @Success      200  {array}   carResponse
// @Failure      500  {object}  messageResponse
// @Router       /cars [get]
func (h *CarHandler) List(c echo.Context) error {
	cars, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCarResponses(cars))
}

// Get handles GET /api/cars/:id.
//
// @Summary      Get a car by id
// @Tags         cars
// @Produce      json
// @Param        id   path      string  true  "Car id"
// @Success      200  {object}  carResponse
// @Failure      404  {object}  messageResponse
// @Router       /cars/{id} [get]
func (h *CarHandler) Get(c echo.Context) error {
	car, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCarResponse(car))
}

// Update handles PUT /api/cars/:id.
//
// @Summary      Update a car
// @Tags         cars
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string      true  "Car id"
// @Param        body  body      carRequest  true  "Car details"
// @Success      200   {object}  carResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /cars/{id} [put]
func (h *CarHandler) Update(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req carRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	car, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.CarInput{
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCarResponse(car))
}

// Delete handles DELETE /api/cars/:id.
//
// @Summary      Delete a car
// @Tags         cars
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Car id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /cars/{id} [delete]
func (h *CarHandler) Delete(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Car deleted successfully"})
}
