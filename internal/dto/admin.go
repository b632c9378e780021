package dto

// AdminLoginRequest is the body of an admin login request.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginResponse carries the server-side session token. The same
// token is also set as a cookie for browser clients.
type AdminLoginResponse struct {
	Token string `json:"token"`
}

// CourseRequest is the body for admin course create/update.
type CourseRequest struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Questions     []string `json:"questions"`
	KnowledgeText string   `json:"knowledgetext"`
}

// CourseResponse is the full course representation for the admin API.
type CourseResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Questions     []string `json:"questions"`
	KnowledgeText string   `json:"knowledgetext"`
}
