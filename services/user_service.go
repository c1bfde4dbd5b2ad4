package services

import (
	"strings"

	"backend/config"
	"backend/models"
	"backend/utils"
)

type ProfileUpdate struct {
	Name                 *string  `json:"name"`
	Age                  *int     `json:"age"`
	Gender               *string  `json:"gender"`
	Height               *float64 `json:"height"`
	Weight               *float64 `json:"weight"`
	TargetWeight         *float64 `json:"target_weight"`
	ActivityLevel        *string  `json:"activity_level"`
	Goal                 *string  `json:"goal"`
	DietaryRestrictions  []string `json:"dietary_restrictions"`
	ProfilePicture       *string  `json:"profile_picture"` // base64 data URI
	NotificationsEnabled *bool    `json:"notifications_enabled"`
}

// Profile is the user record enriched with derived values. The derived
// fields are recomputed on every read; nothing here persists them.
type Profile struct {
	User          models.User `json:"user"`
	BMI           float64     `json:"bmi"`
	BMICategory   string      `json:"bmi_category"`
	CalorieTarget int         `json:"calorie_target"`
	WaterTarget   int         `json:"water_target"`
}

func GetProfile(userID uint) (*Profile, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}

	p := &Profile{
		User:          user,
		CalorieTarget: utils.DailyCalorieTarget(&user),
		WaterTarget:   utils.DailyWaterTarget(&user),
	}
	if bmi, err := utils.CalculateBMI(user.Height, user.Weight); err == nil {
		p.BMI = bmi
		p.BMICategory = utils.BMICategory(bmi)
	}
	return p, nil
}

func UpdateProfile(userID uint, in ProfileUpdate) (*Profile, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		user.Age = *in.Age
	}
	if in.Gender != nil {
		user.Gender = *in.Gender
	}
	if in.Height != nil {
		user.Height = *in.Height
	}
	if in.Weight != nil {
		user.Weight = *in.Weight
	}
	if in.TargetWeight != nil {
		user.TargetWeight = *in.TargetWeight
	}
	if in.ActivityLevel != nil {
		user.ActivityLevel = *in.ActivityLevel
	}
	if in.Goal != nil {
		user.Goal = *in.Goal
	}
	if in.DietaryRestrictions != nil {
		user.DietaryRestrictions = in.DietaryRestrictions
	}
	if in.NotificationsEnabled != nil {
		user.NotificationsEnabled = *in.NotificationsEnabled
	}
	if in.ProfilePicture != nil && *in.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(*in.ProfilePicture, "profile-pictures", "user")
		if err != nil {
			return nil, err
		}
		user.ProfilePicture = url
	}

	if err := config.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return GetProfile(user.ID)
}

// DeleteAccount removes the user and all their owned rows. Catalog data
// (predefined meals, packages) is shared and untouched.
func DeleteAccount(userID uint) error {
	tx := config.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	owned := []interface{}{
		&models.Meal{},
		&models.WaterLog{},
		&models.WeightLog{},
		&models.Reminder{},
		&models.Feedback{},
		&models.UserDevice{},
	}
	for _, m := range owned {
		if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	var lists []models.GroceryList
	if err := tx.Where("user_id = ?", userID).Find(&lists).Error; err != nil {
		tx.Rollback()
		return err
	}
	for _, l := range lists {
		if err := tx.Where("grocery_list_id = ?", l.ID).Delete(&models.GroceryItem{}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.GroceryList{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&models.User{}, userID).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
