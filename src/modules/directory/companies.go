package directory

import (
	"errors"
	"log"
	"strconv"

	"OperatorsClub/src/core/apperrors"
	"OperatorsClub/src/core/helpers"
	"OperatorsClub/src/core/middleware"
	"OperatorsClub/src/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListCompanies returns every company with its tags, name ascending.
func (h *Handler) ListCompanies(c *fiber.Ctx) error {
	var companies []models.Company
	if err := h.DB.Order("name ASC").Find(&companies).Error; err != nil {
		storeErr := apperrors.FromStore("directory: list companies", err)
		log.Printf("Failed to list companies: %v", err)
		return helpers.HandleAppError(c, "Failed to fetch companies", storeErr)
	}

	items, err := h.withCompanyTags(companies)
	if err != nil {
		log.Printf("Failed to aggregate company tags: %v", err)
		return helpers.HandleAppError(c, "Failed to fetch companies", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Companies retrieved", fiber.Map{"companies": items})
}

// GetCompany returns one company with its tags.
func (h *Handler) GetCompany(c *fiber.Ctx) error {
	companyID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid company id", err)
	}

	var company models.Company
	if err := h.DB.First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Company not found", nil)
		}
		log.Printf("Failed to fetch company %d: %v", companyID, err)
		return helpers.HandleAppError(c, "Failed to fetch company", apperrors.FromStore("directory: fetch company", err))
	}

	items, err := h.withCompanyTags([]models.Company{company})
	if err != nil {
		log.Printf("Failed to aggregate tags for company %d: %v", companyID, err)
		return helpers.HandleAppError(c, "Failed to fetch company", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Company retrieved", fiber.Map{"company": items[0]})
}

// LikedCompanies returns the caller's liked companies with their tags.
func (h *Handler) LikedCompanies(c *fiber.Ctx) error {
	identity := middleware.UserIdentity(c)
	if identity == "" {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing session", nil)
	}

	ids, err := h.Likes.LikedEntityIDs(models.EntityKindCompany, identity)
	if err != nil {
		log.Printf("Failed to list liked companies for %s: %v", identity, err)
		return helpers.HandleAppError(c, "Failed to fetch liked companies", err)
	}

	companies := []models.Company{}
	if len(ids) > 0 {
		if err := h.DB.Where("id IN ?", ids).Order("name ASC").Find(&companies).Error; err != nil {
			log.Printf("Failed to fetch liked companies for %s: %v", identity, err)
			return helpers.HandleAppError(c, "Failed to fetch liked companies", apperrors.FromStore("directory: fetch liked companies", err))
		}
	}

	items, err := h.withCompanyTags(companies)
	if err != nil {
		log.Printf("Failed to aggregate liked company tags for %s: %v", identity, err)
		return helpers.HandleAppError(c, "Failed to fetch liked companies", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Liked companies retrieved", fiber.Map{"companies": items})
}
