package request

type StoreRecentSearchRequest struct {
	City string `json:"recentSearchedCity" binding:"required"`
}
