package model

// AnswerPersistPayload is the JSON envelope pushed onto the autosave
// queue for the background answer writer.
type AnswerPersistPayload struct {
	AttemptID  string `json:"attempt_id"`
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// ScorePersistPayload is the JSON envelope pushed onto the score queue
// when an attempt is submitted. The grading worker batches these into
// attempt updates and gradebook entries.
type ScorePersistPayload struct {
	AttemptID  string  `json:"attempt_id"`
	QuizID     string  `json:"quiz_id"`
	StudentID  int     `json:"student_id"`
	ClassID    int     `json:"class_id"`
	SubjectID  int     `json:"subject_id"`
	AuthorID   int     `json:"author_id"`
	QuizTitle  string  `json:"quiz_title"`
	Score      float64 `json:"score"`
	Percentage float64 `json:"percentage"`
	IsPassed   bool    `json:"is_passed"`
	Status     string  `json:"status"`
}
