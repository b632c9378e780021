package dto

// QuestionPayload is one assigned question in the API response.
type QuestionPayload struct {
	Q string `json:"q"`
}

// BeginSessionRequest is the body of a begin/resume session request.
type BeginSessionRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// BeginSessionResponse covers every outcome of the begin/resume state
// machine. The attempt-cap outcome carries Error and Taken=true with a
// 200 status; the other outcomes carry the assigned questions.
type BeginSessionResponse struct {
	Taken      bool              `json:"taken"`
	Questions  []QuestionPayload `json:"questions,omitempty"`
	TakenCount int               `json:"taken_count"`
	CourseID   string            `json:"course_id,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// SubmittedAnswer is one answer in a finalize request.
type SubmittedAnswer struct {
	Index    int    `json:"index"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FinalizeRequest is the body of a finalize request.
type FinalizeRequest struct {
	Username string            `json:"username"`
	Answers  []SubmittedAnswer `json:"answers"`
}

// EvaluatedAnswerPayload is one graded answer in the finalize response.
type EvaluatedAnswerPayload struct {
	Index    int     `json:"index"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// FinalizeResponse reports the summed final score and the full
// evaluated-answer list.
type FinalizeResponse struct {
	FinalScore float64                  `json:"final_score"`
	Total      int                      `json:"total"`
	Answers    []EvaluatedAnswerPayload `json:"answers"`
}

// CourseSummary is one course in the public listing.
type CourseSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"question_count"`
}

// CourseListResponse wraps the public course listing.
type CourseListResponse struct {
	Courses []CourseSummary `json:"courses"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
