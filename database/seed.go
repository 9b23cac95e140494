package database

import (
	"encoding/json"
	"fmt"

	"github.com/lshigami/k12tutor/internal/model"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DemoUsername = "demo_student"
	DemoPassword = "demo123"
)

type seedTopic struct {
	Name        string
	Description string
	Difficulty  int
}

type seedQuestion struct {
	Topic       string
	Text        string
	Options     []string
	Answer      string
	Explanation string
	Difficulty  int
	Points      int
	ExamType    string
}

type seedKnowledge struct {
	Subject       string
	Topic         string
	Prerequisites []string
	Related       []string
	Difficulty    int
	Description   string
	Objectives    []string
}

var seedSubjects = []model.Subject{
	{Name: "Mathematics", GradeLevel: "K-12", Description: "Algebra, Geometry, Calculus, Statistics"},
	{Name: "English Language Arts", GradeLevel: "K-12", Description: "Reading, Writing, Grammar, Literature"},
	{Name: "Science", GradeLevel: "K-12", Description: "Biology, Chemistry, Physics, Earth Science"},
	{Name: "Social Studies", GradeLevel: "K-12", Description: "History, Geography, Civics, Economics"},
}

var seedMathTopics = []seedTopic{
	{"Algebra Basics", "Variables, equations, and basic operations", 1},
	{"Linear Equations", "Solving linear equations and graphing", 2},
	{"Quadratic Functions", "Parabolas, factoring, and quadratic formula", 3},
	{"Geometry", "Shapes, angles, and spatial reasoning", 2},
	{"Statistics", "Data analysis, probability, and distributions", 3},
}

var seedQuestions = []seedQuestion{
	{
		Topic:       "Algebra Basics",
		Text:        "What is the value of x in the equation 2x + 5 = 13?",
		Options:     []string{"x = 3", "x = 4", "x = 5", "x = 6"},
		Answer:      "x = 4",
		Explanation: "To solve 2x + 5 = 13, subtract 5 from both sides: 2x = 8, then divide by 2: x = 4",
		Difficulty:  1, Points: 10, ExamType: "GENERAL",
	},
	{
		Topic:       "Algebra Basics",
		Text:        "If y = 3x - 2, what is the value of y when x = 5?",
		Options:     []string{"y = 11", "y = 13", "y = 15", "y = 17"},
		Answer:      "y = 13",
		Explanation: "Substitute x = 5 into the equation: y = 3(5) - 2 = 15 - 2 = 13",
		Difficulty:  1, Points: 10, ExamType: "SAT",
	},
	{
		Topic:       "Linear Equations",
		Text:        "What is the slope of the line passing through points (2, 3) and (4, 7)?",
		Options:     []string{"slope = 1", "slope = 2", "slope = 3", "slope = 4"},
		Answer:      "slope = 2",
		Explanation: "Slope = (y2 - y1)/(x2 - x1) = (7 - 3)/(4 - 2) = 4/2 = 2",
		Difficulty:  2, Points: 15, ExamType: "SAT",
	},
}

var seedPetItems = []model.PetItem{
	{Name: "Apple", Type: "food", Cost: 5, Description: "A healthy snack for your pet", UnlockLevel: 1},
	{Name: "Ball", Type: "toy", Cost: 10, Description: "A fun toy to play with", UnlockLevel: 1},
	{Name: "Crown", Type: "accessory", Cost: 50, Description: "A royal crown for your pet", UnlockLevel: 3},
	{Name: "Magic Wand", Type: "toy", Cost: 100, Description: "A magical wand for advanced pets", UnlockLevel: 5},
}

var seedKnowledgeGraph = []seedKnowledge{
	{"Mathematics", "Basic Arithmetic", nil, []string{"Fractions", "Decimals", "Algebra Basics"}, 1,
		"Basic addition, subtraction, multiplication, and division",
		[]string{"Master basic operations", "Understand number properties"}},
	{"Mathematics", "Algebra Basics", []string{"Basic Arithmetic"}, []string{"Linear Equations", "Quadratic Functions"}, 2,
		"Variables, expressions, and basic algebraic operations",
		[]string{"Understand variables", "Solve simple equations"}},
	{"Mathematics", "Linear Equations", []string{"Algebra Basics"}, []string{"Quadratic Functions", "Graphing"}, 2,
		"Solving and graphing linear equations",
		[]string{"Solve linear equations", "Graph linear functions"}},
	{"Mathematics", "Quadratic Functions", []string{"Linear Equations", "Algebra Basics"}, []string{"Polynomials", "Graphing"}, 3,
		"Quadratic equations, factoring, and the quadratic formula",
		[]string{"Factor quadratics", "Use quadratic formula", "Graph parabolas"}},
	{"Science", "Basic Chemistry", nil, []string{"Periodic Table", "Chemical Reactions"}, 2,
		"Atoms, molecules, and basic chemical concepts",
		[]string{"Understand atomic structure", "Identify elements"}},
	{"Science", "Physics Basics", []string{"Basic Arithmetic"}, []string{"Motion", "Forces", "Energy"}, 2,
		"Basic physics concepts and measurements",
		[]string{"Understand motion", "Calculate forces"}},
}

func jsonList(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// Seed inserts the sample catalog, pet shop, knowledge graph and demo account.
// Rows are matched on their natural keys, so running it twice is harmless.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range seedSubjects {
			subject := s
			if err := tx.Where(model.Subject{Name: subject.Name}).FirstOrCreate(&subject).Error; err != nil {
				return fmt.Errorf("seeding subject %q: %w", s.Name, err)
			}
			if subject.Name != "Mathematics" {
				continue
			}
			if err := seedTopics(tx, subject.ID); err != nil {
				return err
			}
		}

		for _, it := range seedPetItems {
			item := it
			if err := tx.Where(model.PetItem{Name: item.Name}).FirstOrCreate(&item).Error; err != nil {
				return fmt.Errorf("seeding pet item %q: %w", it.Name, err)
			}
		}

		for _, k := range seedKnowledgeGraph {
			if err := seedKnowledgeNode(tx, k); err != nil {
				return err
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing demo password: %w", err)
		}
		demo := model.Student{
			Username:     DemoUsername,
			Email:        "demo@example.com",
			PasswordHash: string(hash),
			GradeLevel:   "9th Grade",
		}
		if err := tx.Where(model.Student{Username: DemoUsername}).FirstOrCreate(&demo).Error; err != nil {
			return fmt.Errorf("seeding demo student: %w", err)
		}

		log.Info().Str("username", DemoUsername).Msg("Seed data in place")
		return nil
	})
}

func seedTopics(tx *gorm.DB, subjectID uint) error {
	topicIDs := make(map[string]uint, len(seedMathTopics))
	for _, t := range seedMathTopics {
		topic := model.Topic{SubjectID: subjectID, Name: t.Name, Description: t.Description, DifficultyLevel: t.Difficulty}
		if err := tx.Where(model.Topic{SubjectID: subjectID, Name: t.Name}).FirstOrCreate(&topic).Error; err != nil {
			return fmt.Errorf("seeding topic %q: %w", t.Name, err)
		}
		topicIDs[t.Name] = topic.ID
	}

	for _, q := range seedQuestions {
		options, err := jsonList(q.Options)
		if err != nil {
			return err
		}
		question := model.Question{
			TopicID:         topicIDs[q.Topic],
			QuestionText:    q.Text,
			QuestionType:    model.QuestionTypeMultipleChoice,
			Options:         options,
			CorrectAnswer:   q.Answer,
			Explanation:     q.Explanation,
			DifficultyLevel: q.Difficulty,
			Points:          q.Points,
			ExamType:        q.ExamType,
		}
		err = tx.Where("topic_id = ? AND question_text = ?", question.TopicID, question.QuestionText).
			FirstOrCreate(&question).Error
		if err != nil {
			return fmt.Errorf("seeding question %q: %w", q.Text, err)
		}
	}
	return nil
}

func seedKnowledgeNode(tx *gorm.DB, k seedKnowledge) error {
	prereqs, err := jsonList(k.Prerequisites)
	if err != nil {
		return err
	}
	related, err := jsonList(k.Related)
	if err != nil {
		return err
	}
	objectives, err := jsonList(k.Objectives)
	if err != nil {
		return err
	}
	node := model.KnowledgeNode{
		Subject:            k.Subject,
		Topic:              k.Topic,
		PrerequisiteTopics: prereqs,
		RelatedTopics:      related,
		DifficultyLevel:    k.Difficulty,
		MasteryThreshold:   0.8,
		Description:        k.Description,
		LearningObjectives: objectives,
	}
	if err := tx.Where(model.KnowledgeNode{Subject: k.Subject, Topic: k.Topic}).FirstOrCreate(&node).Error; err != nil {
		return fmt.Errorf("seeding knowledge node %q: %w", k.Topic, err)
	}
	return nil
}
