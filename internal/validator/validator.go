// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	lastFourRegex = regexp.MustCompile(`^[0-9]{4}$`)
)

// validCurrencies contains the ISO 4217 currency codes accepted on subscriptions.
var validCurrencies = map[string]bool{
	"AUD": true, "BRL": true, "CAD": true, "CHF": true, "CNY": true,
	"CZK": true, "DKK": true, "EUR": true, "GBP": true, "HKD": true,
	"HUF": true, "IDR": true, "ILS": true, "INR": true, "JPY": true,
	"KRW": true, "MXN": true, "MYR": true, "NOK": true, "NZD": true,
	"PHP": true, "PLN": true, "RON": true, "SEK": true, "SGD": true,
	"THB": true, "TRY": true, "TWD": true, "USD": true, "ZAR": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("income_type", validateIncomeType)
		_ = v.RegisterValidation("pay_frequency", validatePayFrequency)
		_ = v.RegisterValidation("pod_category", validatePodCategory)
		_ = v.RegisterValidation("goal_category", validateGoalCategory)
		_ = v.RegisterValidation("goal_status", validateGoalStatus)
		_ = v.RegisterValidation("billing_cycle", validateBillingCycle)
		_ = v.RegisterValidation("subscription_status", validateSubscriptionStatus)
		_ = v.RegisterValidation("card_brand", validateCardBrand)
		_ = v.RegisterValidation("last_four", validateLastFour)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateLastFour(fl validator.FieldLevel) bool {
	return lastFourRegex.MatchString(fl.Field().String())
}

func validateIncomeType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "salary", "hourly", "contract", "freelance", "other":
		return true
	}
	return false
}

func validatePayFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "weekly", "biweekly", "monthly", "quarterly", "yearly", "irregular":
		return true
	}
	return false
}

func validatePodCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "bills", "savings", "spending", "emergency", "debt", "custom":
		return true
	}
	return false
}

func validateGoalCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "savings", "debt_payoff", "investment", "purchase", "emergency_fund", "other":
		return true
	}
	return false
}

func validateGoalStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "not_started", "in_progress", "completed", "paused", "abandoned":
		return true
	}
	return false
}

func validateBillingCycle(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "weekly", "monthly", "quarterly", "yearly":
		return true
	}
	return false
}

func validateSubscriptionStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "paused", "cancelled", "watchlist":
		return true
	}
	return false
}

func validateCardBrand(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "visa", "mastercard", "amex", "discover", "other":
		return true
	}
	return false
}
