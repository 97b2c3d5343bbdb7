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

// ListRepos returns every repo with its tags, stars descending.
func (h *Handler) ListRepos(c *fiber.Ctx) error {
	var repos []models.Repo
	if err := h.DB.Order("stars DESC").Find(&repos).Error; err != nil {
		storeErr := apperrors.FromStore("directory: list repos", err)
		log.Printf("Failed to list repos: %v", err)
		return helpers.HandleAppError(c, "Failed to fetch repos", storeErr)
	}

	items, err := h.withRepoTags(repos)
	if err != nil {
		log.Printf("Failed to aggregate repo tags: %v", err)
		return helpers.HandleAppError(c, "Failed to fetch repos", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Repos retrieved", fiber.Map{"repos": items})
}

// GetRepo returns one repo with its tags.
func (h *Handler) GetRepo(c *fiber.Ctx) error {
	repoID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid repo id", err)
	}

	var repo models.Repo
	if err := h.DB.First(&repo, repoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleError(c, fiber.StatusNotFound, "Repo not found", nil)
		}
		log.Printf("Failed to fetch repo %d: %v", repoID, err)
		return helpers.HandleAppError(c, "Failed to fetch repo", apperrors.FromStore("directory: fetch repo", err))
	}

	items, err := h.withRepoTags([]models.Repo{repo})
	if err != nil {
		log.Printf("Failed to aggregate tags for repo %d: %v", repoID, err)
		return helpers.HandleAppError(c, "Failed to fetch repo", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Repo retrieved", fiber.Map{"repo": items[0]})
}

// LikedRepos returns the caller's liked repos with their tags.
func (h *Handler) LikedRepos(c *fiber.Ctx) error {
	identity := middleware.UserIdentity(c)
	if identity == "" {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing session", nil)
	}

	ids, err := h.Likes.LikedEntityIDs(models.EntityKindRepo, identity)
	if err != nil {
		log.Printf("Failed to list liked repos for %s: %v", identity, err)
		return helpers.HandleAppError(c, "Failed to fetch liked repos", err)
	}

	repos := []models.Repo{}
	if len(ids) > 0 {
		if err := h.DB.Where("id IN ?", ids).Order("stars DESC").Find(&repos).Error; err != nil {
			log.Printf("Failed to fetch liked repos for %s: %v", identity, err)
			return helpers.HandleAppError(c, "Failed to fetch liked repos", apperrors.FromStore("directory: fetch liked repos", err))
		}
	}

	items, err := h.withRepoTags(repos)
	if err != nil {
		log.Printf("Failed to aggregate liked repo tags for %s: %v", identity, err)
		return helpers.HandleAppError(c, "Failed to fetch liked repos", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Liked repos retrieved", fiber.Map{"repos": items})
}
