package service

import (
	"slices"

	"github.com/lshigami/k12tutor/internal/dto"
)

// HomeworkTemplate is the fixed explanation returned for a subject.
type HomeworkTemplate struct {
	Response        string
	Steps           []dto.HomeworkStep
	RelatedConcepts []dto.RelatedConcept
}

var homeworkTemplates = map[string]HomeworkTemplate{
	"Mathematics": {
		Response: "Let's work through this math problem together! First we'll break down the question, then I'll guide you to the answer one step at a time.",
		Steps: []dto.HomeworkStep{
			{Order: 1, Title: "Understand the problem", Content: "Read the problem carefully and decide what you are asked to find.", Hint: "Pick out the key information and the unknowns"},
			{Order: 2, Title: "List what you know", Content: "Write down every piece of information the problem gives you.", Hint: "Turn the words into math expressions"},
			{Order: 3, Title: "Choose a method", Content: "Pick a strategy that fits this type of problem.", Hint: "Think about formulas, drawing a diagram or logical reasoning"},
			{Order: 4, Title: "Do the calculation", Content: "Carry out the method you chose.", Hint: "Watch the order of operations and your units"},
			{Order: 5, Title: "Check your answer", Content: "Make sure the answer makes sense.", Hint: "Plug the answer back into the original problem"},
		},
		RelatedConcepts: []dto.RelatedConcept{
			{Name: "Algebra Basics", Difficulty: "Beginner", Description: "Working with variables and expressions"},
			{Name: "Solving Equations", Difficulty: "Intermediate", Description: "Solving one-variable linear equations"},
			{Name: "Graphing Functions", Difficulty: "Intermediate", Description: "Graphs and properties of linear functions"},
		},
	},
	"Science": {
		Response: "This is a great science question! Let's use the scientific method to analyze and solve it.",
		Steps: []dto.HomeworkStep{
			{Order: 1, Title: "Observe", Content: "Look closely at the phenomenon or problem described.", Hint: "Pay attention to details and key features"},
			{Order: 2, Title: "Form a hypothesis", Content: "Suggest a possible explanation based on what you observed.", Hint: "Think about the scientific principles involved"},
			{Order: 3, Title: "Design an experiment", Content: "Plan a way to test your hypothesis.", Hint: "Control your variables so the results are reliable"},
			{Order: 4, Title: "Analyze the data", Content: "Study the results and the data you collected.", Hint: "Look for patterns and trends"},
			{Order: 5, Title: "Draw a conclusion", Content: "Reach a conclusion based on your analysis.", Hint: "Make sure the conclusion matches the evidence"},
		},
		RelatedConcepts: []dto.RelatedConcept{
			{Name: "Scientific Method", Difficulty: "Beginner", Description: "Observation, hypothesis, experiment and analysis"},
			{Name: "Data Analysis", Difficulty: "Intermediate", Description: "Reading charts and using basic statistics"},
			{Name: "Scientific Principles", Difficulty: "Intermediate", Description: "Core theory of the related discipline"},
		},
	},
	"English Language Arts": {
		Response: "Let's analyze this language arts question together! I'll guide you toward a deeper understanding of the text and how language is used.",
		Steps: []dto.HomeworkStep{
			{Order: 1, Title: "Understand the text", Content: "Read the text carefully and get the basic meaning.", Hint: "Note the theme, plot and characters"},
			{Order: 2, Title: "Analyze language techniques", Content: "Identify the literary devices the author uses.", Hint: "Look for metaphor, symbolism and contrast"},
			{Order: 3, Title: "Explore the theme", Content: "Work out the deeper themes and meaning of the text.", Hint: "Consider why the author wrote it"},
			{Order: 4, Title: "Connect the context", Content: "Relate the text to its historical and cultural background.", Hint: "Knowing the period helps you understand the work"},
			{Order: 5, Title: "Form your view", Content: "Develop your own interpretation from your analysis.", Hint: "Support your view with evidence from the text"},
		},
		RelatedConcepts: []dto.RelatedConcept{
			{Name: "Literary Analysis", Difficulty: "Intermediate", Description: "Methods for analyzing and critiquing texts"},
			{Name: "Literary Devices", Difficulty: "Intermediate", Description: "Metaphor, symbolism, contrast and similar techniques"},
			{Name: "Writing Skills", Difficulty: "Advanced", Description: "Writing argumentative and expository essays"},
		},
	},
}

var fallbackTemplate = HomeworkTemplate{
	Response: "That's a great question! Let me help you analyze and solve it.",
	Steps: []dto.HomeworkStep{
		{Order: 1, Title: "Analyze the problem", Content: "First, let's understand the core of the problem.", Hint: "Find the key information and the goal"},
		{Order: 2, Title: "Make a plan", Content: "Lay out the steps to solve the problem.", Hint: "Break a complex problem into simple steps"},
		{Order: 3, Title: "Carry out the plan", Content: "Work through the plan step by step.", Hint: "Keep your reasoning clear"},
		{Order: 4, Title: "Check the result", Content: "Verify that your answer is correct.", Hint: "Make sure the answer meets the question's requirements"},
	},
	RelatedConcepts: []dto.RelatedConcept{
		{Name: "Problem Solving", Difficulty: "Beginner", Description: "Systematic ways to analyze problems"},
		{Name: "Logical Thinking", Difficulty: "Intermediate", Description: "Basic reasoning and argument skills"},
	},
}

// RespondHomework looks up the template for subject. The question text is never inspected.
func RespondHomework(subject, questionText string) HomeworkTemplate {
	tmpl, ok := homeworkTemplates[subject]
	if !ok {
		tmpl = fallbackTemplate
	}
	return HomeworkTemplate{
		Response:        tmpl.Response,
		Steps:           slices.Clone(tmpl.Steps),
		RelatedConcepts: slices.Clone(tmpl.RelatedConcepts),
	}
}
