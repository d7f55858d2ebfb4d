package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key for a student's login session
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:%d", studentID)
}

// AttemptStartKey returns the cache key for a student's attempt start timestamp
func (r *CacheKeyStruct) AttemptStartKey(quizID string, studentID int) string {
	return fmt.Sprintf("student:%d:quiz:%s:attempt_start", studentID, quizID)
}

// AttemptAnswersKey returns the cache key for a student's draft answers
func (r *CacheKeyStruct) AttemptAnswersKey(quizID string, studentID int) string {
	return fmt.Sprintf("student:%d:quiz:%s:answers", studentID, quizID)
}

// QuizPayloadKey returns the cache key for a quiz's student payload
func (r *CacheKeyStruct) QuizPayloadKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:payload", quizID)
}

// QuizTimeLimitKey returns the cache key for a quiz's time limit
func (r *CacheKeyStruct) QuizTimeLimitKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:time_limit", quizID)
}

// QuizAnswerKey returns the cache key for a quiz's answer key hash
func (r *CacheKeyStruct) QuizAnswerKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:key", quizID)
}

// QuizPointsKey returns the cache key for a quiz's per-question points hash
func (r *CacheKeyStruct) QuizPointsKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:points", quizID)
}

// QuizMonitorChannel returns the Redis PubSub channel name for a quiz monitor
func (r *CacheKeyStruct) QuizMonitorChannel(quizID string) string {
	return fmt.Sprintf("quiz:%s:monitor", quizID)
}

var CacheKey = NewCacheKeyStruct()
