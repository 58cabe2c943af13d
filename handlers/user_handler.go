package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tutorly/api/models"
	"github.com/tutorly/api/services"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserHandler struct {
	db     *gorm.DB
	ledger *services.LedgerService
}

func NewUserHandler(db *gorm.DB, ledger *services.LedgerService) *UserHandler {
	return &UserHandler{db: db, ledger: ledger}
}

type CreateUserRequest struct {
	FullName string   `json:"full_name" validate:"required,min=2"`
	Email    string   `json:"email" validate:"required,email"`
	Role     string   `json:"role" validate:"omitempty,oneof=student tutor"`
	Avatar   *string  `json:"avatar" validate:"omitempty,url"`
	Phone    *string  `json:"phone"`
	Bio      *string  `json:"bio"`
	Subjects []string `json:"subjects"`
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	subjects, _ := json.Marshal(req.Subjects)

	user := models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     role,
		Avatar:   req.Avatar,
		Phone:    req.Phone,
		Bio:      req.Bio,
		Subjects: datatypes.JSON(subjects),
	}
	if err := h.db.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A user with this email already exists"})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(user)
}

type UpdateUserRequest struct {
	FullName *string  `json:"full_name" validate:"omitempty,min=2"`
	Role     *string  `json:"role" validate:"omitempty,oneof=student tutor"`
	Avatar   *string  `json:"avatar" validate:"omitempty,url"`
	Phone    *string  `json:"phone"`
	Bio      *string  `json:"bio"`
	Subjects []string `json:"subjects"`
}

// UpdateUser edits profile fields only. The wallet balance has no place
// here: it moves exclusively through the ledger credit.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Subjects != nil {
		subjects, _ := json.Marshal(req.Subjects)
		updates["subjects"] = datatypes.JSON(subjects)
	}

	if len(updates) > 0 {
		result := h.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
		if result.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
		}
		if result.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

type CreditWalletRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

func (h *UserHandler) CreditWallet(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	var req CreditWalletRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.ledger.Credit(userID, req.Amount); err != nil {
		return serviceError(c, err)
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{
		"message":        "Wallet credited successfully",
		"wallet_balance": user.WalletBalance,
	})
}
