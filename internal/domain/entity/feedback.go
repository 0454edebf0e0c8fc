package entity

import (
	"strconv"
	"strings"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Feedback is one customer review of a bike.
type Feedback struct {
	FeedbackID string `json:"feedbackId"`
	BikeID     string `json:"bikeId,omitempty"`
	UserID     string `json:"userId,omitempty"`
	UserName   string `json:"userName,omitempty"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	Sentiment  string `json:"sentiment,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
}

// Author is the reviewer shown under a comment.
func (f Feedback) Author() string {
	switch {
	case f.UserName != "":
		return f.UserName
	case len(f.UserID) > 8:
		return f.UserID[:8] + "..."
	case f.UserID != "":
		return f.UserID
	default:
		return "Anonymous"
	}
}

// SentimentSummary counts reviews per sentiment as computed by the backend.
type SentimentSummary struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Count returns the number of reviews with a sentiment name.
func (s SentimentSummary) Count(sentiment string) int {
	switch strings.ToLower(sentiment) {
	case "positive":
		return s.Positive
	case "negative":
		return s.Negative
	case "neutral":
		return s.Neutral
	default:
		return 0
	}
}

// BikeFeedback is the GET /feedback/{bikeId} response.
type BikeFeedback struct {
	Feedback             []Feedback        `json:"feedback"`
	SentimentSummary     *SentimentSummary `json:"sentimentSummary,omitempty"`
	MostPopularSentiment string            `json:"mostPopularSentiment,omitempty"`
}

// PopularShare is the whole-number percentage of reviews with the most popular sentiment.
func (b BikeFeedback) PopularShare() string {
	total := len(b.Feedback)
	if b.MostPopularSentiment == "" || b.SentimentSummary == nil || total == 0 {
		return "0"
	}

	share := float64(b.SentimentSummary.Count(b.MostPopularSentiment)) / float64(total) * 100

	return strconv.FormatFloat(share, 'f', 0, 64)
}

// FeedbackInput is the body of POST /feedback.
type FeedbackInput struct {
	BikeID  string `json:"bikeId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
