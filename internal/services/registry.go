package services

import (
	"storefront_backend/internal/email"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService   AuthService
	StoreService  StoreService
	UserService   UserService
	ReviewService ReviewService
	EmailProvider email.Provider
}
