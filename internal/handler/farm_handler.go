package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"durianfarm/internal/service"
)

// FarmHandler routes farm and tree requests to the farm domain service.
type FarmHandler struct {
	svc service.FarmService
}

// NewFarmHandler creates a farm handler.
func NewFarmHandler(svc service.FarmService) *FarmHandler {
	return &FarmHandler{svc: svc}
}

func paramUint(c echo.Context, name string) (uint, error) {
	parsed, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(parsed), nil
}

// formFile returns the named upload or nil when the field is absent.
func formFile(c echo.Context, name string) *multipart.FileHeader {
	file, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return file
}

// ListFarms godoc
// @Summary List all farms
// @Tags farm
// @Produce json
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Failure 500 {object} handler.Response
// @Router /farm [get]
func (h *FarmHandler) ListFarms(c echo.Context) error {
	farms, err := h.svc.ListFarms(c.Request().Context())
	if err != nil {
		return fail(c, err, "Error fetching farms")
	}
	if len(farms) == 0 {
		return notFound(c, "No farms found")
	}
	return ok(c, "Successfully fetched farms", farms)
}

// CreateFarm godoc
// @Summary Create a farm
// @Tags farm
// @Accept mpfd
// @Produce json
// @Param farm_name formData string true "Farm name"
// @Param farm_photo formData file false "Farm photo"
// @Success 201 {object} handler.Response
// @Failure 400 {object} handler.Response
// @Failure 500 {object} handler.Response
// @Router /farm [post]
func (h *FarmHandler) CreateFarm(c echo.Context) error {
	in, err := farmInputFromForm(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	farm, err := h.svc.CreateFarm(c.Request().Context(), in, formFile(c, "farm_photo"))
	if err != nil {
		return fail(c, err, "Error creating farm")
	}
	return created(c, fmt.Sprintf("Farm ID %d was created successfully", farm.ID), farm)
}

// CreateFarmForUser godoc
// @Summary Create a farm linked to a user
// @Tags farm
// @Accept mpfd
// @Produce json
// @Param username path string true "Username"
// @Param farm_photo formData file false "Farm photo"
// @Success 201 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Failure 500 {object} handler.Response
// @Router /farm/{username} [post]
func (h *FarmHandler) CreateFarmForUser(c echo.Context) error {
	in, err := farmInputFromForm(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	farm, err := h.svc.CreateFarmForUser(c.Request().Context(), c.Param("username"), in, formFile(c, "farm_photo"))
	if err != nil {
		return fail(c, err, "Error creating farm")
	}
	return created(c, fmt.Sprintf("Farm ID %d was created successfully", farm.ID), farm)
}

// UploadFarmImage godoc
// @Summary Replace a farm's photo
// @Tags farm
// @Accept mpfd
// @Produce json
// @Param id path int true "Farm ID"
// @Param file formData file true "Image"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/upload-image/{id} [post]
func (h *FarmHandler) UploadFarmImage(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	file := formFile(c, "file")
	if file == nil {
		return badRequest(c, "missing file")
	}

	path, err := h.svc.UpdateFarmPhoto(c.Request().Context(), id, file)
	if err != nil {
		return fail(c, err, "Error uploading image")
	}
	return ok(c, "Image uploaded successfully", echo.Map{"imagePath": path})
}

// GetFarm godoc
// @Summary Get a farm by id
// @Tags farm
// @Produce json
// @Param id path int true "Farm ID"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/{id} [get]
func (h *FarmHandler) GetFarm(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	farm, err := h.svc.GetFarm(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "Error retrieving farm")
	}
	return ok(c, fmt.Sprintf("Successfully retrieved farm with ID %d", id), farm)
}

// UpdateFarm godoc
// @Summary Update a farm
// @Tags farm
// @Accept mpfd
// @Produce json
// @Param id path int true "Farm ID"
// @Param farm_photo formData file false "Replacement photo"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/{id} [put]
func (h *FarmHandler) UpdateFarm(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	in, err := farmInputFromForm(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	farm, err := h.svc.UpdateFarm(c.Request().Context(), id, in, formFile(c, "farm_photo"))
	if err != nil {
		return fail(c, err, "Error updating farm")
	}
	return c.JSON(http.StatusOK, Response{
		Status:  "Updated",
		Message: fmt.Sprintf("Farm with ID %d updated successfully", id),
		Result:  farm,
	})
}

// DeleteFarm godoc
// @Summary Delete a farm and all dependent records
// @Tags farm
// @Produce json
// @Param id path int true "Farm ID"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/{id} [delete]
func (h *FarmHandler) DeleteFarm(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := h.svc.DeleteFarm(c.Request().Context(), id); err != nil {
		return fail(c, err, "Error deleting farm")
	}
	return c.JSON(http.StatusOK, Response{
		Status:  "Success",
		Message: fmt.Sprintf("Farm with ID %d deleted successfully", id),
	})
}

// ListPredictionsForFarm godoc
// @Summary List predictions for a farm
// @Tags farm
// @Produce json
// @Param id path int true "Farm ID"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/{id}/predict [get]
func (h *FarmHandler) ListPredictionsForFarm(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	predictions, err := h.svc.ListPredictionsForFarm(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, fmt.Sprintf("Error fetching prediction for Farm ID %d", id))
	}
	if len(predictions) == 0 {
		return notFound(c, fmt.Sprintf("No prediction found for Farm ID %d", id))
	}
	return ok(c, fmt.Sprintf("Successfully fetched prediction for Farm ID %d", id), predictions)
}

// ListDiseasesForFarm godoc
// @Summary List diseases for a farm
// @Tags farm
// @Produce json
// @Param id path int true "Farm ID"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/{id}/disease [get]
func (h *FarmHandler) ListDiseasesForFarm(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	diseases, err := h.svc.ListDiseasesForFarm(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, fmt.Sprintf("Error fetching diseases for Farm ID %d", id))
	}
	if len(diseases) == 0 {
		return notFound(c, fmt.Sprintf("No diseases found for Farm ID %d", id))
	}
	return ok(c, fmt.Sprintf("Successfully fetched diseases for Farm ID %d", id), diseases)
}

// ListTreesForFarm godoc
// @Summary List trees for a farm with their photo path
// @Tags farm
// @Produce json
// @Param id path int true "Farm ID"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/{id}/trees [get]
func (h *FarmHandler) ListTreesForFarm(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	trees, err := h.svc.ListTreesForFarm(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, fmt.Sprintf("Error fetching trees for Farm ID %d", id))
	}
	if len(trees) == 0 {
		return notFound(c, fmt.Sprintf("No trees found for Farm ID %d", id))
	}
	return ok(c, fmt.Sprintf("Successfully fetched trees for Farm ID %d", id), trees)
}

// ListDiseasesForFarmAndTree godoc
// @Summary List diseases for a farm and tree
// @Tags farm
// @Produce json
// @Param id path int true "Farm ID"
// @Param tree_id path int true "Tree ID"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/{id}/tree/{tree_id}/disease [get]
func (h *FarmHandler) ListDiseasesForFarmAndTree(c echo.Context) error {
	farmID, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	treeID, err := paramUint(c, "tree_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	diseases, err := h.svc.ListDiseasesForFarmAndTree(c.Request().Context(), farmID, treeID)
	if err != nil {
		return fail(c, err, fmt.Sprintf("Error fetching diseases for Farm ID %d and Tree ID %d", farmID, treeID))
	}
	if len(diseases) == 0 {
		return notFound(c, fmt.Sprintf("No diseases found for Farm ID %d and Tree ID %d", farmID, treeID))
	}
	return ok(c, fmt.Sprintf("Successfully fetched diseases for Farm ID %d and Tree ID %d", farmID, treeID), diseases)
}

// ListPredictionsForFarmAndTree godoc
// @Summary List predictions for a farm and tree
// @Tags farm
// @Produce json
// @Param id path int true "Farm ID"
// @Param tree_id path int true "Tree ID"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/{id}/tree/{tree_id}/predict [get]
func (h *FarmHandler) ListPredictionsForFarmAndTree(c echo.Context) error {
	farmID, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	treeID, err := paramUint(c, "tree_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	predictions, err := h.svc.ListPredictionsForFarmAndTree(c.Request().Context(), farmID, treeID)
	if err != nil {
		return fail(c, err, fmt.Sprintf("Error fetching predictions for Farm ID %d and Tree ID %d", farmID, treeID))
	}
	if len(predictions) == 0 {
		return notFound(c, fmt.Sprintf("No predictions found for Farm ID %d and Tree ID %d", farmID, treeID))
	}
	return ok(c, fmt.Sprintf("Successfully fetched predictions for Farm ID %d and Tree ID %d", farmID, treeID), predictions)
}

// TotalCollectedTreesForUser godoc
// @Summary Sum collected trees across a user's farms
// @Tags farm
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/user/{user_id}/total [get]
func (h *FarmHandler) TotalCollectedTreesForUser(c echo.Context) error {
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	totals, err := h.svc.TotalCollectedTreesForUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err, fmt.Sprintf("Error fetching total collected trees for user %d", userID))
	}
	// A zero total reads as "no data" for this endpoint, even when the
	// user has farms. Kept for client compatibility.
	if totals.SumCollected == 0 {
		return notFound(c, fmt.Sprintf("No farms found for user %d", userID))
	}
	return ok(c, fmt.Sprintf("Successfully fetched total collected trees for user %d", userID), totals)
}

// CreateTree godoc
// @Summary Create a tree for a farm
// @Tags farm
// @Accept mpfd
// @Produce json
// @Param id path int true "Farm ID"
// @Param tree_photo_path formData file false "Tree photo"
// @Success 201 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/{id}/tree [post]
func (h *FarmHandler) CreateTree(c echo.Context) error {
	farmID, err := paramUint(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	in, err := treeInputFromForm(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	tree, err := h.svc.CreateTree(c.Request().Context(), farmID, in, formFile(c, "tree_photo_path"))
	if err != nil {
		return fail(c, err, "Error creating tree for farm")
	}
	return created(c, fmt.Sprintf("Tree ID %d was created successfully for Farm ID %d", tree.ID, farmID), tree)
}

// UpdateTree godoc
// @Summary Update a tree's counts and photo
// @Tags farm
// @Accept mpfd
// @Produce json
// @Param tree_id path int true "Tree ID"
// @Param tree_photo_path formData file false "Replacement photo"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/update/tree/{tree_id} [put]
func (h *FarmHandler) UpdateTree(c echo.Context) error {
	treeID, err := paramUint(c, "tree_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	in, err := treeInputFromForm(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	tree, err := h.svc.UpdateTree(c.Request().Context(), treeID, in, formFile(c, "tree_photo_path"))
	if err != nil {
		return fail(c, err, "Error updating tree")
	}
	return c.JSON(http.StatusOK, Response{
		Status:  "Success",
		Message: fmt.Sprintf("Tree ID %d updated successfully", tree.ID),
		Result:  tree,
	})
}

// DeleteTree godoc
// @Summary Delete a tree, its photos and its photo file
// @Tags farm
// @Produce json
// @Param tree_id path int true "Tree ID"
// @Success 200 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Router /farm/delete/tree/{tree_id} [delete]
func (h *FarmHandler) DeleteTree(c echo.Context) error {
	treeID, err := paramUint(c, "tree_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.svc.DeleteTree(c.Request().Context(), treeID); err != nil {
		return fail(c, err, "Error deleting tree")
	}
	return c.JSON(http.StatusOK, Response{
		Status:  "Success",
		Message: fmt.Sprintf("Tree with ID %d deleted successfully", treeID),
	})
}
