package dto

import "time"

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// QuotaExceededResponse is returned with 429 when a rate-limited feature is refused.
type QuotaExceededResponse struct {
	Error     string `json:"error"`
	Limit     int    `json:"limit"`
	Used      int    `json:"used"`
	ResetTime string `json:"resetTime"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type StudentResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	GradeLevel  string `json:"gradeLevel"`
	TotalPoints int    `json:"totalPoints"`
	Level       int    `json:"level"`
	PetName     string `json:"petName"`
	PetType     string `json:"petType"`
	PetLevel    int    `json:"petLevel"`
}

type AuthResponse struct {
	Token   string          `json:"token"`
	Student StudentResponse `json:"student"`
}

type SubjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	GradeLevel  string `json:"gradeLevel"`
	Description string `json:"description,omitempty"`
}

type TopicResponse struct {
	ID              uint   `json:"id"`
	SubjectID       uint   `json:"subjectId"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	DifficultyLevel int    `json:"difficultyLevel"`
}

// QuestionResponse never carries the answer key; it is revealed by the answer endpoint.
type QuestionResponse struct {
	ID              uint     `json:"id"`
	TopicID         uint     `json:"topicId"`
	QuestionText    string   `json:"questionText"`
	QuestionType    string   `json:"questionType"`
	Options         []string `json:"options,omitempty" copier:"-"`
	DifficultyLevel int      `json:"difficultyLevel"`
	Points          int      `json:"points"`
	ExamType        string   `json:"examType,omitempty"`
}

type StartSessionResponse struct {
	SessionID uint `json:"sessionId"`
}

type Feedback struct {
	Type       string `json:"type"` // "success" or "helpful"
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

type AnswerResultResponse struct {
	IsCorrect     bool     `json:"isCorrect"`
	PointsEarned  int      `json:"pointsEarned"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Feedback      Feedback `json:"feedback"`
}

type HomeworkStep struct {
	Order   int    `json:"order"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Hint    string `json:"hint"`
}

type RelatedConcept struct {
	Name        string `json:"name"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
}

type HomeworkHelpResponse struct {
	SessionID       uint             `json:"sessionId"`
	Response        string           `json:"response"`
	Steps           []HomeworkStep   `json:"steps"`
	RelatedConcepts []RelatedConcept `json:"relatedConcepts"`
	PointsEarned    int              `json:"pointsEarned"`
	UsageRemaining  int              `json:"usageRemaining"`
}

type HomeworkHistoryItem struct {
	ID            uint      `json:"id"`
	QuestionText  string    `json:"questionText"`
	Subject       string    `json:"subject"`
	CreatedAt     time.Time `json:"createdAt"`
	StudentRating *int      `json:"studentRating"`
}

// DiagnosticQuestion includes the answer key so the client can grade each response.
type DiagnosticQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Difficulty    int      `json:"difficulty"`
	Topic         string   `json:"topic"`
}

type StartDiagnosticResponse struct {
	TestID        uint                 `json:"testId"`
	Questions     []DiagnosticQuestion `json:"questions"`
	EstimatedTime int                  `json:"estimatedTime"` // minutes
}

type DiagnosticResultResponse struct {
	AbilityEstimate float64  `json:"abilityEstimate"`
	Recommendations []string `json:"recommendations"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
}

type MasteryResponse struct {
	Level         float64    `json:"level"`
	Confidence    float64    `json:"confidence"`
	LastPracticed *time.Time `json:"lastPracticed"`
	PracticeCount int        `json:"practiceCount"`
}

type KnowledgeNodeResponse struct {
	ID                 uint            `json:"id"`
	Subject            string          `json:"subject"`
	Topic              string          `json:"topic"`
	PrerequisiteTopics []string        `json:"prerequisiteTopics" copier:"-"`
	RelatedTopics      []string        `json:"relatedTopics" copier:"-"`
	DifficultyLevel    int             `json:"difficultyLevel"`
	MasteryThreshold   float64         `json:"masteryThreshold"`
	Description        string          `json:"description"`
	LearningObjectives []string        `json:"learningObjectives" copier:"-"`
	Mastery            MasteryResponse `json:"mastery" copier:"-"`
}

type LearningPathStep struct {
	Step          int    `json:"step"`
	Topic         string `json:"topic"`
	Difficulty    int    `json:"difficulty"`
	EstimatedTime int    `json:"estimatedTime"` // minutes
}

type LearningPathResponse struct {
	ID                      uint               `json:"id"`
	Subject                 string             `json:"subject"`
	PathName                string             `json:"pathName"`
	TargetGoals             []string           `json:"targetGoals" copier:"-"`
	PathStructure           []LearningPathStep `json:"pathStructure" copier:"-"`
	CurrentPosition         int                `json:"currentPosition"`
	EstimatedCompletionTime int                `json:"estimatedCompletionTime"` // minutes
	IsActive                bool               `json:"isActive"`
	CreatedAt               time.Time          `json:"createdAt"`
}

type LearningGoalResponse struct {
	ID           uint       `json:"id"`
	GoalType     string     `json:"goalType"`
	TargetValue  string     `json:"targetValue"`
	CurrentValue string     `json:"currentValue"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	IsCompleted  bool       `json:"isCompleted"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type CreateGoalResponse struct {
	GoalID uint `json:"goalId"`
}

type PetItemResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Cost        int    `json:"cost"`
	Description string `json:"description,omitempty"`
	UnlockLevel int    `json:"unlockLevel"`
}

type PurchaseResponse struct {
	Success         bool `json:"success"`
	PointsRemaining int  `json:"pointsRemaining"`
}

type OwnedPetItemResponse struct {
	ID          uint            `json:"id"`
	Item        PetItemResponse `json:"item"`
	PurchasedAt time.Time       `json:"purchasedAt"`
}

type UsageStatusResponse struct {
	Feature   string `json:"feature"`
	IsPremium bool   `json:"isPremium"`
}
