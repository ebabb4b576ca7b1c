package request

type MagicLink struct {
	Email string `json:"email" binding:"required"`
}

type AdminLogin struct {
	Password string `json:"password" binding:"required"`
}
