package request

// OpenDrawerRequest opens a cash drawer session with a counted float
type OpenDrawerRequest struct {
	OpeningAmount string `json:"opening_amount" binding:"required"`
}

// CloseDrawerRequest closes the session against a declared counted amount
type CloseDrawerRequest struct {
	DeclaredAmount string `json:"declared_amount" binding:"required"`
}

// DrawerMovementRequest records a manual payout or deposit
type DrawerMovementRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=payout deposit"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}
