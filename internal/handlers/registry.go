package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler   *AuthHandler
	StoreHandler  *StoreHandler
	UserHandler   *UserHandler
	ReviewHandler *ReviewHandler
}
