package dto

// CreateSubjectRequest is used by admins to add a subject to the catalog.
type CreateSubjectRequest struct {
	Name        string `json:"name" binding:"required"`
	GradeLevel  string `json:"gradeLevel" binding:"required"`
	Description string `json:"description"`
}

type CreateTopicRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	DifficultyLevel int    `json:"difficultyLevel" binding:"omitempty,min=1,max=5"`
}

// CreateQuestionRequest adds a question to a topic. Options are required for multiple_choice only.
type CreateQuestionRequest struct {
	QuestionText    string   `json:"questionText" binding:"required"`
	QuestionType    string   `json:"questionType" binding:"required,oneof=multiple_choice short_answer essay"`
	Options         []string `json:"options"`
	CorrectAnswer   string   `json:"correctAnswer" binding:"required"`
	Explanation     string   `json:"explanation"`
	DifficultyLevel int      `json:"difficultyLevel" binding:"omitempty,min=1,max=5"`
	Points          int      `json:"points" binding:"omitempty,min=1"`
	ExamType        string   `json:"examType" binding:"omitempty,oneof=SAT ACT AP STATE GENERAL"`
}

// SetPremiumRequest toggles the premium quota of a student for one feature.
type SetPremiumRequest struct {
	Feature   string `json:"feature" binding:"required"`
	IsPremium *bool  `json:"isPremium" binding:"required"`
}
