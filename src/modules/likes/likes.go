package likes

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"OperatorsClub/src/core/apperrors"
	"OperatorsClub/src/core/helpers"
	"OperatorsClub/src/core/middleware"
	"OperatorsClub/src/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Result is the toggle outcome returned to the UI.
type Result struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// Service flips a user's like of a directory entity and keeps the entity's
// denormalized like_count in step. The like row and the counter are two
// separate writes on purpose; a failure between them leaves the counter off
// by one, which the system accepts rather than hiding behind a transaction.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// tableFor maps an entity kind to its directory table.
func tableFor(kind models.EntityKind) (string, error) {
	switch kind {
	case models.EntityKindCompany:
		return models.Company{}.TableName(), nil
	case models.EntityKindRepo:
		return models.Repo{}.TableName(), nil
	}
	return "", apperrors.Wrap(apperrors.ErrInvalidArgument, "likes: unknown entity kind "+string(kind), nil)
}

// Toggle flips the like relationship for (kind, entityID, userIdentity).
// Calling it twice in succession likes and then unlikes; there is no
// dedicated set/unset operation.
func (s *Service) Toggle(kind models.EntityKind, entityID int, userIdentity string) (Result, error) {
	if userIdentity == "" {
		return Result{}, apperrors.Wrap(apperrors.ErrUnauthenticated, "likes: toggle without session", nil)
	}
	table, err := tableFor(kind)
	if err != nil {
		return Result{}, err
	}

	// The entity must exist before anything is written
	var entity struct{ ID int }
	if err := s.DB.Table(table).Select("id").Where("id = ?", entityID).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{}, apperrors.Wrap(apperrors.ErrNotFound, fmt.Sprintf("likes: %s %d", kind, entityID), nil)
		}
		return Result{}, apperrors.FromStore("likes: fetch entity", err)
	}

	// Look up whether the caller already likes this entity
	var existing models.Like
	err = s.DB.Where("entity_kind = ? AND entity_id = ? AND user_identity = ?", kind, entityID, userIdentity).
		First(&existing).Error
	switch {
	case err == nil:
		// Currently liked: remove the record first, then decrement. Aborting
		// on a failed delete keeps a retry from decrementing twice.
		if err := s.DB.Delete(&models.Like{}, existing.ID).Error; err != nil {
			return Result{}, apperrors.FromStore("likes: delete record", err)
		}
		count, err := s.adjustLikeCount(table, entityID, -1)
		if err != nil {
			return Result{}, apperrors.FromStore("likes: decrement count", err)
		}
		return Result{Liked: false, LikeCount: count}, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Not yet liked: insert the record first, then increment
		record := models.Like{
			EntityKind:   kind,
			EntityID:     entityID,
			UserIdentity: userIdentity,
		}
		if err := s.DB.Create(&record).Error; err != nil {
			return Result{}, apperrors.FromStore("likes: insert record", err)
		}
		count, err := s.adjustLikeCount(table, entityID, +1)
		if err != nil {
			return Result{}, apperrors.FromStore("likes: increment count", err)
		}
		return Result{Liked: true, LikeCount: count}, nil

	default:
		return Result{}, apperrors.FromStore("likes: lookup record", err)
	}
}

// LikedEntityIDs returns the ids of every entity of the given kind the user
// has liked. Read side for the "my likes" directory views.
func (s *Service) LikedEntityIDs(kind models.EntityKind, userIdentity string) ([]int, error) {
	if userIdentity == "" {
		return nil, apperrors.Wrap(apperrors.ErrUnauthenticated, "likes: list without session", nil)
	}
	var ids []int
	err := s.DB.Model(&models.Like{}).
		Where("entity_kind = ? AND user_identity = ?", kind, userIdentity).
		Order("created_at DESC").
		Pluck("entity_id", &ids).Error
	if err != nil {
		return nil, apperrors.FromStore("likes: list records", err)
	}
	return ids, nil
}

var errAtomicUnsupported = errors.New("atomic like_count adjust unsupported")

// adjustLikeCount applies delta to the entity's like_count, clamped at zero.
// The single-statement atomic form is preferred; when the store cannot run it
// the read-modify-write fallback is used instead, accepting its lost-update
// window between concurrent toggles.
func (s *Service) adjustLikeCount(table string, entityID, delta int) (int, error) {
	count, err := s.tryAtomicAdjust(table, entityID, delta)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, errAtomicUnsupported) {
		log.Printf("Atomic like_count adjust failed on %s id=%d: %v; using fallback", table, entityID, err)
	}
	return s.fallbackAdjust(table, entityID, delta)
}

// tryAtomicAdjust runs the whole adjustment as one UPDATE .. RETURNING. Only
// the postgres dialect can run it; anything else reports unsupported so the
// caller falls back.
func (s *Service) tryAtomicAdjust(table string, entityID, delta int) (int, error) {
	if s.DB.Dialector.Name() != "postgres" {
		return 0, errAtomicUnsupported
	}
	var count int
	query := fmt.Sprintf("UPDATE %s SET like_count = GREATEST(like_count + ?, 0) WHERE id = ? RETURNING like_count", table)
	if err := s.DB.Raw(query, delta, entityID).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// fallbackAdjust reads the current count, clamps the new value at zero and
// writes it back. Two concurrent toggles on the same entity can clobber each
// other here; the like rows stay exact, only the cached count drifts.
func (s *Service) fallbackAdjust(table string, entityID, delta int) (int, error) {
	var row struct{ LikeCount int }
	if err := s.DB.Table(table).Select("like_count").Where("id = ?", entityID).First(&row).Error; err != nil {
		return 0, err
	}
	newCount := row.LikeCount + delta
	if newCount < 0 {
		newCount = 0
	}
	if err := s.DB.Table(table).Where("id = ?", entityID).Update("like_count", newCount).Error; err != nil {
		return 0, err
	}
	return newCount, nil
}

// Handler exposes the toggle endpoints.
type Handler struct {
	Service *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Service: NewService(db)}
}

func (h *Handler) LikeCompany(c *fiber.Ctx) error {
	return h.toggle(c, models.EntityKindCompany)
}

func (h *Handler) LikeRepo(c *fiber.Ctx) error {
	return h.toggle(c, models.EntityKindRepo)
}

func (h *Handler) toggle(c *fiber.Ctx, kind models.EntityKind) error {
	identity := middleware.UserIdentity(c)
	if identity == "" {
		return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or missing session", nil)
	}

	// Validate the id before any store access
	entityID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid entity id", err)
	}

	result, err := h.Service.Toggle(kind, entityID, identity)
	if err != nil {
		log.Printf("Like toggle failed kind=%s id=%d user=%s: %v", kind, entityID, identity, err)
		return helpers.HandleAppError(c, "Failed to toggle like", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Like toggled", result)
}
