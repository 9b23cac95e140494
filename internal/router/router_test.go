package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/config"
	"github.com/lshigami/k12tutor/database/dbtest"
	adminctrl "github.com/lshigami/k12tutor/internal/controller/admin"
	userctrl "github.com/lshigami/k12tutor/internal/controller/user"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/middleware"
	"github.com/lshigami/k12tutor/internal/repository"
	"github.com/lshigami/k12tutor/internal/router"
	"github.com/lshigami/k12tutor/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminKey = "test-admin-key"

func newTestServer(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.OpenSeeded(t)

	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	knowledgeRepo := repository.NewKnowledgeRepository(db)

	tokens := service.NewTokenService(cfg)
	limiter := service.NewUsageLimiter(repository.NewUsageLimitRepository(db), db, cfg)

	ctrls := router.Controllers{
		Auth:    userctrl.NewAuthController(service.NewAuthService(studentRepo, tokens)),
		Catalog: userctrl.NewCatalogController(service.NewCatalogService(subjectRepo, questionRepo)),
		Practice: userctrl.NewPracticeController(
			service.NewSessionTracker(repository.NewStudySessionRepository(db)),
			service.NewAnswerService(db, questionRepo, repository.NewAttemptRepository(db), studentRepo)),
		Homework: userctrl.NewHomeworkController(
			service.NewHomeworkService(db, limiter, repository.NewHomeworkRepository(db), studentRepo, cfg)),
		Diagnostic: userctrl.NewDiagnosticController(
			service.NewDiagnosticService(db, repository.NewDiagnosticRepository(db), knowledgeRepo)),
		Learning: userctrl.NewLearningController(
			service.NewGoalService(repository.NewLearningGoalRepository(db)),
			service.NewKnowledgeGraphService(knowledgeRepo),
			service.NewLearningPathService(repository.NewLearningPathRepository(db))),
		Pet: userctrl.NewPetController(service.NewPetService(db, repository.NewPetRepository(db), studentRepo)),
		Admin: adminctrl.NewAdminContentController(
			service.NewAdminContentService(subjectRepo, questionRepo, studentRepo, limiter)),
	}

	engine := gin.New()
	router.Register(engine, cfg, tokens, ctrls)
	return engine
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.Server{AdminAPIKey: adminKey},
		Auth:   config.Auth{JWTSecret: "router-test-secret", JWTExpiration: time.Hour},
		Usage:  config.Usage{DailyLimit: 3, PremiumDailyLimit: 999, HomeworkPoints: 5},
	}
}

type request struct {
	method  string
	path    string
	body    any
	token   string
	headers map[string]string
}

func do(t *testing.T, engine *gin.Engine, r request) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if r.body != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(r.body))
	}
	req := httptest.NewRequest(r.method, router.APIPrefix+r.path, &body)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func login(t *testing.T, engine *gin.Engine, username, password string) dto.AuthResponse {
	t.Helper()
	w := do(t, engine, request{method: http.MethodPost, path: "/auth/login",
		body: dto.LoginRequest{Username: username, Password: password}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[dto.AuthResponse](t, w)
}

func register(t *testing.T, engine *gin.Engine, username string) dto.AuthResponse {
	t.Helper()
	w := do(t, engine, request{method: http.MethodPost, path: "/auth/register", body: dto.RegisterRequest{
		Username: username, Email: username + "@example.com", Password: "secret123", GradeLevel: "7th Grade",
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[dto.AuthResponse](t, w)
}

func TestAuthFlow(t *testing.T) {
	engine := newTestServer(t, testConfig())

	auth := register(t, engine, "newkid")
	assert.NotEmpty(t, auth.Token)

	w := do(t, engine, request{method: http.MethodPost, path: "/auth/register", body: dto.RegisterRequest{
		Username: "newkid", Email: "other@example.com", Password: "secret123", GradeLevel: "7th Grade",
	}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username or email already exists", decode[dto.ErrorResponse](t, w).Error)

	w = do(t, engine, request{method: http.MethodPost, path: "/auth/login",
		body: dto.LoginRequest{Username: "newkid", Password: "wrong-password"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, engine, request{method: http.MethodGet, path: "/student/profile", token: auth.Token})
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[dto.StudentResponse](t, w)
	assert.Equal(t, auth.Student.ID, profile.ID)
	assert.Equal(t, 0, profile.TotalPoints)
}

func TestBearerTokenRequired(t *testing.T) {
	engine := newTestServer(t, testConfig())

	w := do(t, engine, request{method: http.MethodGet, path: "/student/profile"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access token required", decode[dto.ErrorResponse](t, w).Error)

	w = do(t, engine, request{method: http.MethodGet, path: "/student/profile", token: "garbage"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid token", decode[dto.ErrorResponse](t, w).Error)

	w = do(t, engine, request{method: http.MethodGet, path: "/student/profile",
		headers: map[string]string{"Authorization": "Basic abc"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, engine, request{method: http.MethodGet, path: "/subjects"})
	assert.Equal(t, http.StatusOK, w.Code, "catalog browsing is public")
}

func TestRegisterValidation(t *testing.T) {
	engine := newTestServer(t, testConfig())

	w := do(t, engine, request{method: http.MethodPost, path: "/auth/register",
		body: map[string]string{"username": "ab", "email": "not-an-email"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, "Invalid request", resp.Error)
	assert.NotEmpty(t, resp.Details)
}

func TestSessionTypeIsRestricted(t *testing.T) {
	engine := newTestServer(t, testConfig())
	student := register(t, engine, "typist")

	for _, sessionType := range []string{"practice", "exam", "review"} {
		w := do(t, engine, request{method: http.MethodPost, path: "/sessions", token: student.Token,
			body: dto.StartSessionRequest{SessionType: sessionType}})
		assert.Equal(t, http.StatusOK, w.Code, "%s: %s", sessionType, w.Body.String())
	}

	w := do(t, engine, request{method: http.MethodPost, path: "/sessions", token: student.Token,
		body: dto.StartSessionRequest{SessionType: "cram"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPracticeFlow(t *testing.T) {
	engine := newTestServer(t, testConfig())
	demo := login(t, engine, "demo_student", "demo123")

	w := do(t, engine, request{method: http.MethodGet, path: "/subjects"})
	require.Equal(t, http.StatusOK, w.Code)
	var mathID uint
	for _, s := range decode[[]dto.SubjectResponse](t, w) {
		if s.Name == "Mathematics" {
			mathID = s.ID
		}
	}
	require.NotZero(t, mathID)

	w = do(t, engine, request{method: http.MethodGet, path: fmt.Sprintf("/subjects/%d/topics", mathID)})
	require.Equal(t, http.StatusOK, w.Code)
	topics := decode[[]dto.TopicResponse](t, w)
	require.NotEmpty(t, topics)
	algebra := topics[0]
	for _, tp := range topics {
		if tp.Name == "Algebra Basics" {
			algebra = tp
		}
	}

	w = do(t, engine, request{method: http.MethodPost, path: "/sessions", token: demo.Token,
		body: dto.StartSessionRequest{SessionType: "practice", SubjectID: &mathID, TopicID: &algebra.ID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	session := decode[dto.StartSessionResponse](t, w)

	w = do(t, engine, request{method: http.MethodGet, path: fmt.Sprintf("/topics/%d/questions?examType=GENERAL", algebra.ID), token: demo.Token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correctAnswer")
	questions := decode[[]dto.QuestionResponse](t, w)
	require.Len(t, questions, 1)
	assert.Contains(t, questions[0].Options, "x = 4")

	w = do(t, engine, request{method: http.MethodPost, path: fmt.Sprintf("/questions/%d/answer", questions[0].ID), token: demo.Token,
		body: dto.SubmitAnswerRequest{StudentAnswer: "x = 4", TimeSpent: 12}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[dto.AnswerResultResponse](t, w)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 10, result.PointsEarned)
	assert.Equal(t, "success", result.Feedback.Type)

	w = do(t, engine, request{method: http.MethodPut, path: fmt.Sprintf("/study-sessions/%d", session.SessionID), token: demo.Token,
		body: dto.CompleteSessionRequest{QuestionsAnswered: 1, CorrectAnswers: 1, PointsEarned: 10, SessionDuration: 60}})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, engine, request{method: http.MethodGet, path: "/student/profile", token: demo.Token})
	assert.Equal(t, 10, decode[dto.StudentResponse](t, w).TotalPoints)

	other := register(t, engine, "sneaky")
	w = do(t, engine, request{method: http.MethodPut, path: fmt.Sprintf("/sessions/%d", session.SessionID), token: other.Token,
		body: dto.CompleteSessionRequest{}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, engine, request{method: http.MethodPut, path: "/sessions/abc", token: demo.Token, body: dto.CompleteSessionRequest{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, engine, request{method: http.MethodPost, path: "/questions/99999/answer", token: demo.Token,
		body: dto.SubmitAnswerRequest{StudentAnswer: "x"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Question not found", decode[dto.ErrorResponse](t, w).Error)

	w = do(t, engine, request{method: http.MethodGet, path: "/exams/sat/questions", token: demo.Token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.QuestionResponse](t, w), 2)
}

func homeworkRequest(t *testing.T, token, subject string, image []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("questionText", "How do I factor x^2 - 9?"))
	require.NoError(t, form.WriteField("subject", subject))
	if image != nil {
		part, err := form.CreateFormFile("image", "question.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, router.APIPrefix+"/homework-help", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHomeworkHelpQuota(t *testing.T) {
	engine := newTestServer(t, testConfig())
	student := register(t, engine, "homeworker")

	for i := 0; i < 3; i++ {
		var image []byte
		if i == 0 {
			image = []byte("fake png bytes")
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, homeworkRequest(t, student.Token, "Mathematics", image))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[dto.HomeworkHelpResponse](t, w)
		assert.Equal(t, 2-i, resp.UsageRemaining)
		assert.Equal(t, 5, resp.PointsEarned)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, homeworkRequest(t, student.Token, "Mathematics", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	quota := decode[dto.QuotaExceededResponse](t, w)
	assert.Equal(t, "Daily limit reached", quota.Error)
	assert.Equal(t, 3, quota.Limit)
	assert.Equal(t, 3, quota.Used)
	assert.Equal(t, "midnight", quota.ResetTime)

	w = do(t, engine, request{method: http.MethodGet, path: "/homework-help/history?limit=2", token: student.Token})
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]dto.HomeworkHistoryItem](t, w)
	require.Len(t, history, 2)

	w = do(t, engine, request{method: http.MethodPost, path: fmt.Sprintf("/homework-help/%d/rate", history[0].ID), token: student.Token,
		body: dto.RateHomeworkRequest{Rating: 5}})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, engine, request{method: http.MethodPost, path: fmt.Sprintf("/homework-help/%d/rate", history[0].ID), token: student.Token,
		body: dto.RateHomeworkRequest{Rating: 9}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, engine, request{method: http.MethodGet, path: "/student/profile", token: student.Token})
	assert.Equal(t, 15, decode[dto.StudentResponse](t, w).TotalPoints)
}

func TestHomeworkHelpRequiresFields(t *testing.T) {
	engine := newTestServer(t, testConfig())
	student := register(t, engine, "blank")

	req := httptest.NewRequest(http.MethodPost, router.APIPrefix+"/homework-help", strings.NewReader("subject=Science"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+student.Token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiagnosticAndKnowledgeGraph(t *testing.T) {
	engine := newTestServer(t, testConfig())
	student := register(t, engine, "diagnosed")

	w := do(t, engine, request{method: http.MethodPost, path: "/diagnostic-test", token: student.Token,
		body: dto.StartDiagnosticRequest{Subject: "Mathematics"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	started := decode[dto.StartDiagnosticResponse](t, w)
	require.Len(t, started.Questions, 3)

	responses := make([]dto.DiagnosticAnswer, 0, len(started.Questions))
	for _, q := range started.Questions {
		correct := q.Topic == "Algebra Basics"
		responses = append(responses, dto.DiagnosticAnswer{QuestionID: uint(q.ID), Answer: "?", IsCorrect: correct, Topic: q.Topic})
	}
	w = do(t, engine, request{method: http.MethodPost, path: fmt.Sprintf("/diagnostic-test/%d/submit", started.TestID), token: student.Token,
		body: dto.SubmitDiagnosticRequest{Responses: responses, TestDuration: 300}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[dto.DiagnosticResultResponse](t, w)
	assert.InDelta(t, 1.0/3.0, result.AbilityEstimate, 1e-9)
	assert.Equal(t, []string{"Linear Equations"}, result.Weaknesses)

	w = do(t, engine, request{method: http.MethodGet, path: "/knowledge-graph/Mathematics", token: student.Token})
	require.Equal(t, http.StatusOK, w.Code)
	for _, node := range decode[[]dto.KnowledgeNodeResponse](t, w) {
		if node.Topic == "Linear Equations" {
			assert.Equal(t, 0.3, node.Mastery.Level)
		} else {
			assert.Zero(t, node.Mastery.Level, node.Topic)
		}
	}

	w = do(t, engine, request{method: http.MethodGet, path: "/learning-path/Mathematics", token: student.Token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mathematics Learning Path", decode[dto.LearningPathResponse](t, w).PathName)
}

func TestGoalsAndPetShop(t *testing.T) {
	engine := newTestServer(t, testConfig())
	demo := login(t, engine, "demo_student", "demo123")

	w := do(t, engine, request{method: http.MethodPost, path: "/learning-goals", token: demo.Token,
		body: dto.CreateGoalRequest{GoalType: "topic_mastery", TargetValue: "Algebra Basics"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotZero(t, decode[dto.CreateGoalResponse](t, w).GoalID)

	w = do(t, engine, request{method: http.MethodPost, path: "/learning-goals", token: demo.Token,
		body: dto.CreateGoalRequest{GoalType: "become_famous", TargetValue: "1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, engine, request{method: http.MethodGet, path: "/learning-goals", token: demo.Token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.LearningGoalResponse](t, w), 1)

	w = do(t, engine, request{method: http.MethodGet, path: "/pet/items"})
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]dto.PetItemResponse](t, w)
	require.NotEmpty(t, items)

	w = do(t, engine, request{method: http.MethodPost, path: "/pet/purchase", token: demo.Token,
		body: dto.PurchaseItemRequest{ItemID: items[0].ID}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Not enough points", decode[dto.ErrorResponse](t, w).Error)

	w = do(t, engine, request{method: http.MethodGet, path: "/pet/inventory", token: demo.Token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestAdminRoutes(t *testing.T) {
	engine := newTestServer(t, testConfig())
	subject := dto.CreateSubjectRequest{Name: "Music", GradeLevel: "K-12"}

	w := do(t, engine, request{method: http.MethodPost, path: "/admin/subjects", body: subject})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, engine, request{method: http.MethodPost, path: "/admin/subjects", body: subject,
		headers: map[string]string{middleware.AdminKeyHeader: "nope"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := map[string]string{middleware.AdminKeyHeader: adminKey}
	w = do(t, engine, request{method: http.MethodPost, path: "/admin/subjects", body: subject, headers: admin})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.SubjectResponse](t, w)

	w = do(t, engine, request{method: http.MethodPost, path: "/admin/subjects", body: subject, headers: admin})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, engine, request{method: http.MethodPost, path: fmt.Sprintf("/admin/subjects/%d/topics", created.ID), headers: admin,
		body: dto.CreateTopicRequest{Name: "Rhythm", DifficultyLevel: 2}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	topic := decode[dto.TopicResponse](t, w)

	w = do(t, engine, request{method: http.MethodPost, path: fmt.Sprintf("/admin/topics/%d/questions", topic.ID), headers: admin,
		body: dto.CreateQuestionRequest{QuestionText: "How many beats in 4/4?", QuestionType: "short_answer", CorrectAnswer: "4"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	student := register(t, engine, "musician")
	w = do(t, engine, request{method: http.MethodGet, path: fmt.Sprintf("/topics/%d/questions", topic.ID), token: student.Token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.QuestionResponse](t, w), 1)

	premium := true
	w = do(t, engine, request{method: http.MethodPut, path: "/admin/students/" + student.Student.ID + "/premium", headers: admin,
		body: dto.SetPremiumRequest{Feature: "homework_help", IsPremium: &premium}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for i := 0; i < 4; i++ {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, homeworkRequest(t, student.Token, "Science", nil))
		require.Equal(t, http.StatusOK, rec.Code, "premium call %d", i+1)
	}
}

func TestAdminDisabledWithoutKey(t *testing.T) {
	cfg := testConfig()
	cfg.Server.AdminAPIKey = ""
	engine := newTestServer(t, cfg)

	w := do(t, engine, request{method: http.MethodPost, path: "/admin/subjects",
		body: dto.CreateSubjectRequest{Name: "Music", GradeLevel: "K-12"},
		headers: map[string]string{middleware.AdminKeyHeader: "anything"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin API disabled", decode[dto.ErrorResponse](t, w).Error)
}
