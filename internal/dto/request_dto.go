package dto

import "time"

type RegisterRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=50"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	GradeLevel string `json:"gradeLevel" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StartSessionRequest opens a practice run. Subject and topic are optional for review sessions.
type StartSessionRequest struct {
	SessionType string `json:"sessionType" binding:"required,oneof=practice exam review"`
	SubjectID   *uint  `json:"subjectId"`
	TopicID     *uint  `json:"topicId"`
}

// CompleteSessionRequest carries the client-held totals of a practice run. Counts are stored as sent.
type CompleteSessionRequest struct {
	QuestionsAnswered int `json:"questionsAnswered"`
	CorrectAnswers    int `json:"correctAnswers"`
	PointsEarned      int `json:"pointsEarned"`
	SessionDuration   int `json:"sessionDuration"` // seconds
}

type QuestionQuery struct {
	Difficulty int    `form:"difficulty" binding:"omitempty,min=1,max=5"`
	ExamType   string `form:"examType"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type ExamQuery struct {
	SubjectID uint `form:"subject"`
	Limit     int  `form:"limit" binding:"omitempty,min=1,max=100"`
}

type SubmitAnswerRequest struct {
	StudentAnswer string `json:"studentAnswer" binding:"required"`
	TimeSpent     int    `json:"timeSpent" binding:"min=0"` // seconds
}

// HomeworkHelpRequest is bound from a multipart form; the optional image arrives as the "image" file part.
type HomeworkHelpRequest struct {
	QuestionText string `form:"questionText" binding:"required"`
	Subject      string `form:"subject" binding:"required"`
	QuestionType string `form:"questionType"`
}

type HistoryQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

type RateHomeworkRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

type StartDiagnosticRequest struct {
	Subject  string `json:"subject" binding:"required"`
	TestType string `json:"testType"`
}

// DiagnosticAnswer is one graded response; the client grades against the returned answer key.
type DiagnosticAnswer struct {
	QuestionID uint   `json:"questionId"`
	Answer     string `json:"answer"`
	IsCorrect  bool   `json:"isCorrect"`
	Topic      string `json:"topic"`
}

type SubmitDiagnosticRequest struct {
	Responses    []DiagnosticAnswer `json:"responses" binding:"required,dive"`
	TestDuration int                `json:"testDuration" binding:"min=0"`
}

type CreateGoalRequest struct {
	GoalType    string     `json:"goalType" binding:"required,oneof=exam_score topic_mastery weekly_practice"`
	TargetValue string     `json:"targetValue" binding:"required"`
	TargetDate  *time.Time `json:"targetDate"`
}

type PurchaseItemRequest struct {
	ItemID uint `json:"itemId" binding:"required"`
}
