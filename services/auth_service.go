package services

import (
	"errors"
	"strings"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"
)

var ErrEmailTaken = errors.New("email already registered")

func RegisterUser(email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		Name:     name,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	// Best effort, registration succeeds even if the mail bounces.
	go func() { _ = utils.SendWelcomeEmail(user.Email, user.Name) }()

	return &user, nil
}

func AuthenticateUser(email, password string) (string, *models.User, error) {
	var user models.User
	result := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user)
	if result.Error != nil {
		return "", nil, errors.New("invalid email or password")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, errors.New("invalid email or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

func FindUserByEmail(email string) (models.User, error) {
	var user models.User
	result := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user)
	return user, result.Error
}

// StartPasswordReset stores a short-lived reset code and mails it out.
// Callers should respond identically whether or not the email exists.
func StartPasswordReset(email string) error {
	user, err := FindUserByEmail(email)
	if err != nil {
		return err
	}

	token := utils.GenerateRandomToken(6)
	user.ResetToken = token
	user.ResetTokenExp = time.Now().Add(15 * time.Minute)
	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}

	return utils.SendResetEmail(user.Email, token)
}

func ResetPassword(token, newPassword string) error {
	var user models.User
	result := config.DB.Where("reset_token = ?", token).First(&user)
	if result.Error != nil || time.Now().After(user.ResetTokenExp) {
		return errors.New("invalid or expired token")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return config.DB.Save(&user).Error
}
