package forms

import (
	"log"

	"OperatorsClub/src/core/helpers"
	"OperatorsClub/src/core/models"
	"OperatorsClub/src/core/notify"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handler accepts form submissions from the site: validate the payload,
// insert the row, then notify the team chat. A failed notification rolls the
// row back best-effort and reports failure so the UI can ask the visitor to
// retry.
type Handler struct {
	DB       *gorm.DB
	Notifier notify.Notifier
}

func NewHandler(db *gorm.DB, notifier notify.Notifier) *Handler {
	return &Handler{DB: db, Notifier: notifier}
}

// SubmitContact handles the contact form.
func (h *Handler) SubmitContact(c *fiber.Ctx) error {
	body := new(models.ContactMessage)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	body.ID = uuid.New()
	if err := h.DB.Create(body).Error; err != nil {
		log.Printf("Failed to store contact message: %v", err)
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to submit message", err)
	}

	if err := h.deliver("New contact message", map[string]string{
		"Name":    body.Name,
		"Email":   body.Email,
		"Message": body.Message,
	}, body); err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to deliver message", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusCreated, "Message submitted successfully", body)
}

// SubmitApplication handles the club application form.
func (h *Handler) SubmitApplication(c *fiber.Ctx) error {
	body := new(models.ClubApplication)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	body.ID = uuid.New()
	if err := h.DB.Create(body).Error; err != nil {
		log.Printf("Failed to store club application: %v", err)
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to submit application", err)
	}

	if err := h.deliver("New club application", map[string]string{
		"Name":       body.Name,
		"Email":      body.Email,
		"Company":    body.Company,
		"Role":       body.Role,
		"LinkedIn":   body.LinkedIn,
		"Motivation": body.Motivation,
	}, body); err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to deliver application", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusCreated, "Application submitted successfully", body)
}

// SubmitWaitlist handles the waitlist form.
func (h *Handler) SubmitWaitlist(c *fiber.Ctx) error {
	body := new(models.WaitlistEntry)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	body.ID = uuid.New()
	if err := h.DB.Create(body).Error; err != nil {
		log.Printf("Failed to store waitlist entry: %v", err)
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to join waitlist", err)
	}

	if err := h.deliver("New waitlist signup", map[string]string{
		"Email":  body.Email,
		"Source": body.Source,
	}, body); err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to join waitlist", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusCreated, "Added to waitlist", body)
}

// SubmitRegistration handles the program registration form.
func (h *Handler) SubmitRegistration(c *fiber.Ctx) error {
	body := new(models.ProgramRegistration)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	body.ID = uuid.New()
	if err := h.DB.Create(body).Error; err != nil {
		log.Printf("Failed to store program registration: %v", err)
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to register", err)
	}

	if err := h.deliver("New program registration", map[string]string{
		"Name":    body.Name,
		"Email":   body.Email,
		"Program": body.Program,
		"Company": body.Company,
	}, body); err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, "Failed to register", err)
	}
	return helpers.HandleSuccess(c, fiber.StatusCreated, "Registration submitted successfully", body)
}

// deliver notifies the chat webhook about the stored row. When delivery
// fails the row is deleted again best-effort so a retried submission does
// not pile up duplicates; the delete error is only logged.
func (h *Handler) deliver(title string, fields map[string]string, row interface{}) error {
	err := h.Notifier.Send(title, fields)
	if err == nil {
		return nil
	}
	log.Printf("Chat notification failed for %q: %v", title, err)
	if delErr := h.DB.Delete(row).Error; delErr != nil {
		log.Printf("Compensating delete failed for %q: %v", title, delErr)
	}
	return err
}
