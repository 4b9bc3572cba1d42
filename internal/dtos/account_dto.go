package dtos

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Title    string `json:"title"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

type ProfileUpdateRequest struct {
	Name        string `json:"name" binding:"required"`
	Title       string `json:"title"`
	Bio         string `json:"bio"`
	AvatarColor string `json:"avatar_color" binding:"omitempty,hexcolor"`
}

type PasswordChangeRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

type ThemeRequest struct {
	DarkMode *bool `json:"dark_mode" binding:"required"`
}

type ProfileResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Title               string `json:"title"`
	Bio                 string `json:"bio"`
	Initials            string `json:"initials"`
	AvatarColor         string `json:"avatar_color"`
	DarkMode            bool   `json:"dark_mode"`
	CreatedAt           string `json:"created_at"`
	RecentlyViewedCount int    `json:"recently_viewed_count"`
}

type DashboardResponse struct {
	UserName       string        `json:"user_name"`
	RecentlyViewed []JobResponse `json:"recently_viewed"`
	HistoryCount   int           `json:"history_count"`
	PostingsCount  int           `json:"postings_count"`
}
