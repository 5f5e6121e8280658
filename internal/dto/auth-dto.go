package dto

type LoginDTO struct {
	Login    string `json:"login" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type CreateUserDTO struct {
	Login    string `json:"login" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,user_role"`
}

type UserDTO struct {
	ID       int    `json:"id"`
	Login    string `json:"login"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}
